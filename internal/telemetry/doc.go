// Package telemetry provides OpenTelemetry initialization and helpers
// for tracing the recipe suggestion flow, from the HTTP request down to
// the outbound Gemini call.
//
// Traces and logs are exported over OTLP/HTTP when an endpoint is configured;
// otherwise the global no-op providers stay in place.
package telemetry
