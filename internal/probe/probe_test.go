package probe_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/fincore/internal/adapters/http/api"
	service "github.com/okian/fincore/internal/app"
	"github.com/okian/fincore/internal/domain/types"
	"github.com/okian/fincore/internal/probe"
	"github.com/okian/fincore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// newServiceServer serves the real routes over a seeded service.
func newServiceServer() (*httptest.Server, func()) {
	svc := service.New(service.WithSeed(11))
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, nil).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	return srv, func() {
		srv.Close()
		svc.Stop()
	}
}

func TestRun(t *testing.T) {
	Convey("Given a running credit score service", t, func() {
		srv, stop := newServiceServer()
		defer stop()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		Convey("When the probe runs against it", func() {
			stats, err := probe.Run(ctx, probe.Config{
				BaseURL:  srv.URL,
				Requests: 300,
				Workers:  4,
				Timeout:  5 * time.Second,
			})

			Convey("Then every response should honor the contract", func() {
				So(err, ShouldBeNil)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Violations, ShouldEqual, 0)
				So(stats.Requests, ShouldBeGreaterThan, 300)
				So(stats.Succeeded, ShouldEqual, stats.Requests)
				So(stats.MinScore, ShouldBeGreaterThanOrEqualTo, 300)
				So(stats.MaxScore, ShouldBeLessThanOrEqualTo, 850)
				So(stats.MeanScore, ShouldBeBetweenOrEqual, 300, 850)
			})
		})

		Convey("When the expected service name differs", func() {
			_, err := probe.Run(ctx, probe.Config{BaseURL: srv.URL, ServiceName: "Other"})

			Convey("Then it should report the service unhealthy", func() {
				So(errors.Is(err, probe.ErrUnhealthy), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service that breaks the approval rule", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"healthy"}`))
		})
		mux.HandleFunc("/credit-score/", func(w http.ResponseWriter, r *http.Request) {
			id := r.URL.Path[len("/credit-score/"):]
			_, _ = w.Write([]byte(`{"user_id":"` + id + `","credit_score":600,"risk_assessment":"HIGH","approved":true}`))
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"online","service":"Fargate FinTech Core"}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When the probe runs against it", func() {
			stats, err := probe.Run(context.Background(), probe.Config{BaseURL: srv.URL, Requests: 20, Workers: 2})

			Convey("Then violations should be reported", func() {
				So(errors.Is(err, probe.ErrViolation), ShouldBeTrue)
				So(stats.Violations, ShouldBeGreaterThan, 0)
			})
		})
	})

	Convey("Given an unhealthy service", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		Convey("Then the probe should stop at the health check", func() {
			stats, err := probe.Run(context.Background(), probe.Config{BaseURL: srv.URL, Requests: 10})
			So(errors.Is(err, probe.ErrUnhealthy), ShouldBeTrue)
			So(stats.Requests, ShouldEqual, 0)
		})
	})
}

func TestVerifyScore(t *testing.T) {
	Convey("Given the default contract", t, func() {
		cfg := probe.Config{}

		Convey("Then valid responses should pass", func() {
			So(probe.VerifyScore(cfg, "abc123", types.CreditScore{UserID: "abc123", CreditScore: 750, RiskAssessment: "LOW", Approved: true}), ShouldBeNil)
			So(probe.VerifyScore(cfg, "u", types.CreditScore{UserID: "u", CreditScore: 650, RiskAssessment: "HIGH", Approved: true}), ShouldBeNil)
			So(probe.VerifyScore(cfg, "u", types.CreditScore{UserID: "u", CreditScore: 600, RiskAssessment: "HIGH", Approved: false}), ShouldBeNil)
			So(probe.VerifyScore(cfg, "", types.CreditScore{UserID: "", CreditScore: 300, RiskAssessment: "HIGH"}), ShouldBeNil)
		})

		Convey("Then each broken property should be a violation", func() {
			bad := []struct {
				id  string
				got types.CreditScore
			}{
				{"abc", types.CreditScore{UserID: "abd", CreditScore: 750, RiskAssessment: "LOW", Approved: true}},
				{"u", types.CreditScore{UserID: "u", CreditScore: 299, RiskAssessment: "HIGH"}},
				{"u", types.CreditScore{UserID: "u", CreditScore: 851, RiskAssessment: "LOW", Approved: true}},
				{"u", types.CreditScore{UserID: "u", CreditScore: 700, RiskAssessment: "LOW", Approved: true}},
				{"u", types.CreditScore{UserID: "u", CreditScore: 701, RiskAssessment: "HIGH", Approved: true}},
				{"u", types.CreditScore{UserID: "u", CreditScore: 600, RiskAssessment: "HIGH", Approved: true}},
				{"u", types.CreditScore{UserID: "u", CreditScore: 601, RiskAssessment: "HIGH", Approved: false}},
			}
			for _, c := range bad {
				So(errors.Is(probe.VerifyScore(cfg, c.id, c.got), probe.ErrViolation), ShouldBeTrue)
			}
		})
	})
}
