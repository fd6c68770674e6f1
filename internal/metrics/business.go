package metrics

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("sous/business")

	// Suggestion metrics
	SuggestionsTotal          metric.Int64Counter
	ValidationRejectionsTotal metric.Int64Counter

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter
	ExternalAPIDuration   metric.Float64Histogram

	// AI metrics
	AIGenerationDuration metric.Float64Histogram
)

// Instruments are created once at package load. They bind to the global meter
// provider lazily, so telemetry installed later still receives them.
func init() {
	if err := Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}
}

func Init() error {
	var err error

	// Suggestion metrics
	SuggestionsTotal, err = meter.Int64Counter(
		"suggestions.total",
		metric.WithDescription("Total number of recipe suggestion requests by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ValidationRejectionsTotal, err = meter.Int64Counter(
		"validation.rejections.total",
		metric.WithDescription("Total number of submissions rejected before reaching the model"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	// External API metrics
	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	// AI metrics
	AIGenerationDuration, err = meter.Float64Histogram(
		"ai.generation.duration",
		metric.WithDescription("Duration of AI recipe generation"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	return nil
}
