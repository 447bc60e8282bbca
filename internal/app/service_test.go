package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/fincore/internal/app"
	"github.com/okian/fincore/internal/domain/scoring"
	"github.com/okian/fincore/internal/domain/types"
	"github.com/okian/fincore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func fixed(v int) scoring.Generator {
	return scoring.GeneratorFunc(func(int, int) int { return v })
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.ServiceName(), ShouldEqual, "Fargate FinTech Core")
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithServiceName("Edge Scoring"),
			service.WithSeed(42),
			service.WithScoreRange(100, 200),
			service.WithThresholds(150, 120),
		)

		Convey("Then the name should be applied", func() {
			So(svc.ServiceName(), ShouldEqual, "Edge Scoring")
		})
	})

	Convey("Given an empty service name", t, func() {
		svc := service.New(service.WithServiceName(""))

		Convey("Then the default should be kept", func() {
			So(svc.ServiceName(), ShouldEqual, service.DefaultServiceName)
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithGenerator(fixed(750)))
		defer svc.Stop()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		Convey("When scoring before Start", func() {
			_, err := svc.CreditScore(ctx, "abc123")

			Convey("Then it should report ErrNotStarted", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When starting the service twice", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then scoring should work", func() {
				got, err := svc.CreditScore(ctx, "abc123")
				So(err, ShouldBeNil)
				So(got, ShouldResemble, types.CreditScore{
					UserID:         "abc123",
					CreditScore:    750,
					RiskAssessment: "LOW",
					Approved:       true,
				})
			})

			Convey("And after Stop it should refuse to score", func() {
				svc.Stop()
				svc.Stop()
				_, err := svc.CreditScore(ctx, "abc123")
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})
}

func TestService_CreditScore(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()

		Convey("When the draw is 650", func() {
			svc := service.New(service.WithGenerator(fixed(650)))
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			got, err := svc.CreditScore(ctx, "u-1")

			Convey("Then it should be HIGH risk but approved", func() {
				So(err, ShouldBeNil)
				So(got.RiskAssessment, ShouldEqual, "HIGH")
				So(got.Approved, ShouldBeTrue)
			})
		})

		Convey("When the draw is 600", func() {
			svc := service.New(service.WithGenerator(fixed(600)))
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			got, err := svc.CreditScore(ctx, "u-1")

			Convey("Then it should be HIGH risk and not approved", func() {
				So(err, ShouldBeNil)
				So(got.RiskAssessment, ShouldEqual, "HIGH")
				So(got.Approved, ShouldBeFalse)
			})
		})

		Convey("When custom thresholds are configured", func() {
			svc := service.New(
				service.WithGenerator(fixed(150)),
				service.WithScoreRange(100, 200),
				service.WithThresholds(140, 160),
			)
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			got, err := svc.CreditScore(ctx, "u-1")

			Convey("Then they should drive the decisions", func() {
				So(err, ShouldBeNil)
				So(got.CreditScore, ShouldEqual, 150)
				So(got.RiskAssessment, ShouldEqual, "LOW")
				So(got.Approved, ShouldBeFalse)
			})
		})

		Convey("When a scorer is injected", func() {
			scorer := scoring.NewRandomScorer(scoring.WithGenerator(fixed(820)))
			svc := service.New(service.WithScorer(scorer), service.WithGenerator(fixed(301)))
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			got, err := svc.CreditScore(ctx, "")

			Convey("Then it should take precedence over the generator", func() {
				So(err, ShouldBeNil)
				So(got.CreditScore, ShouldEqual, 820)
				So(got.UserID, ShouldEqual, "")
			})
		})

		Convey("When the context is already cancelled", func() {
			svc := service.New(service.WithGenerator(fixed(750)))
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.CreditScore(cctx, "u-1")

			Convey("Then the scorer error should be returned", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}
