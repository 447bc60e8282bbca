package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "fincore")
				So(manager.subsystem, ShouldEqual, "credit")
				So(manager.scoreBuckets, ShouldResemble, []float64{300, 350, 400, 450, 500, 550, 600, 650, 700, 750, 800, 850})
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithScoreBuckets([]float64{500, 700}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "test_namespace")
				So(manager.subsystem, ShouldEqual, "test_subsystem")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(manager.scoreBuckets, ShouldResemble, []float64{500, 700})
				So(manager.constLabels["env"], ShouldEqual, "test")
			})
		})

		Convey("When passing empty option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "fincore")
				So(manager.subsystem, ShouldEqual, "credit")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given an isolated metrics manager", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording scores", func() {
			manager.RecordScore(750, "LOW", true)
			manager.RecordScore(650, "HIGH", true)
			manager.RecordScore(600, "HIGH", false)
			manager.RecordScore(820, "LOW", true)

			Convey("Then decisions should be counted by risk and approval", func() {
				So(testutil.ToFloat64(manager.scoresIssued.WithLabelValues("LOW", "true")), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.scoresIssued.WithLabelValues("HIGH", "true")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.scoresIssued.WithLabelValues("HIGH", "false")), ShouldEqual, 1)
			})

			Convey("And the score histogram should be registered", func() {
				So(testutil.CollectAndCount(manager.scoreValue), ShouldEqual, 1)
			})
		})

		Convey("When recording HTTP traffic", func() {
			manager.RecordHTTPRequest("health", "GET", "200")
			manager.RecordHTTPRequest("health", "GET", "200")
			manager.RecordHTTPRequestDuration("health", "GET", "200", 1.5)
			manager.RecordPanicRecovered("credit_score")

			Convey("Then the counters should reflect it", func() {
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("health", "GET", "200")), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.panicsRecovered.WithLabelValues("credit_score")), ShouldEqual, 1)
			})
		})

		Convey("When recording scoring errors", func() {
			manager.RecordScoringError()
			manager.RecordScoringLatency(0.2)

			Convey("Then the error counter should increase", func() {
				So(testutil.ToFloat64(manager.scoringErrors), ShouldEqual, 1)
			})
		})
	})
}

func TestGlobalMetrics(t *testing.T) {
	Convey("Given the global metrics functions", t, func() {
		Convey("When recording on the global manager", func() {
			So(func() {
				RecordScore(300, "HIGH", false)
				RecordScore(850, "LOW", true)
				RecordScoringLatency(0.1)
				RecordScoringError()
				RecordHTTPRequest("root", "GET", "200")
				RecordHTTPRequestDuration("root", "GET", "200", 0.5)
				RecordPanicRecovered("root")
				RecordErrorByType("server_error", "high")
				RecordErrorByEndpoint("credit_score", "GET", "server_error")
				RecordErrorLatency("http", "server_error", 2.0)
				UpdateSystemMemoryUsage(1024 * 1024 * 100)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)

			Convey("Then the custom registry should expose them", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)

				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["fincore_credit_scores_issued_total"], ShouldBeTrue)
				So(names["fincore_credit_score_value"], ShouldBeTrue)
				So(names["fincore_credit_http_requests_total"], ShouldBeTrue)
				So(names["fincore_system_goroutines"], ShouldBeTrue)
			})
		})
	})
}
