package tracing

import (
	"bytes"
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func TestProvider(t *testing.T) {
	Convey("Given a tracer provider with the stdout exporter", t, func() {
		ctx := context.Background()
		buf := &bytes.Buffer{}
		p, err := New(ctx,
			WithServiceName("fincore-test"),
			WithExporter("STDOUT"),
			WithWriter(buf),
		)
		So(err, ShouldBeNil)
		So(p, ShouldNotBeNil)

		Convey("When a span is recorded and the provider shut down", func() {
			_, span := p.Tracer().Start(ctx, "credit.score")
			So(span.SpanContext().IsValid(), ShouldBeTrue)
			span.End()

			So(p.Shutdown(ctx), ShouldBeNil)

			Convey("Then the span should be exported", func() {
				So(buf.String(), ShouldContainSubstring, "credit.score")
				So(buf.String(), ShouldContainSubstring, "fincore-test")
			})
		})

		Convey("And the global propagator should carry trace context", func() {
			fields := otel.GetTextMapPropagator().Fields()
			So(fields, ShouldContain, "traceparent")

			carrier := propagation.MapCarrier{}
			spanCtx, span := p.Tracer().Start(ctx, "inject")
			otel.GetTextMapPropagator().Inject(spanCtx, carrier)
			span.End()
			So(carrier.Get("traceparent"), ShouldNotBeEmpty)
			So(p.Shutdown(ctx), ShouldBeNil)
		})
	})

	Convey("Given a tracer provider without an exporter", t, func() {
		ctx := context.Background()
		p, err := New(ctx)
		So(err, ShouldBeNil)

		Convey("Then spans should still get valid ids", func() {
			_, span := p.Tracer().Start(ctx, "noop")
			defer span.End()
			So(span.SpanContext().IsValid(), ShouldBeTrue)
		})

		Reset(func() {
			_ = p.Shutdown(ctx)
		})
	})

	Convey("Given an unknown exporter", t, func() {
		p, err := New(context.Background(), WithExporter("zipkin"))

		Convey("Then New should fail with ErrUnknownExporter", func() {
			So(p, ShouldBeNil)
			So(errors.Is(err, ErrUnknownExporter), ShouldBeTrue)
		})
	})
}

func TestSampleRatioClamp(t *testing.T) {
	Convey("Given sample ratio options", t, func() {
		o := options{}

		WithSampleRatio(-1)(&o)
		So(o.sampleRatio, ShouldEqual, 0)

		WithSampleRatio(2)(&o)
		So(o.sampleRatio, ShouldEqual, 1)

		WithSampleRatio(0.25)(&o)
		So(o.sampleRatio, ShouldEqual, 0.25)
	})
}
