package recipe

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/httpclient"
	"github.com/socialchef/sous/internal/logger"
	"github.com/socialchef/sous/internal/metrics"
	"github.com/socialchef/sous/internal/sentry"
	"github.com/socialchef/sous/internal/telemetry"
)

const providerName = "gemini"

// contentGenerator is the slice of *genai.Models used for generation.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// modelResolver is the slice of *genai.Models used to check the model exists.
type modelResolver interface {
	Get(ctx context.Context, model string, config *genai.GetModelConfig) (*genai.Model, error)
}

// GeminiOptions configures the Gemini client. It is built once at startup.
type GeminiOptions struct {
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// GeminiGateway implements Gateway on top of the Google Gen AI SDK.
// It holds no per-request state and is safe to share.
type GeminiGateway struct {
	models contentGenerator
	model  string
	tracer trace.Tracer
}

// NewGeminiGateway creates the SDK client and resolves the configured model.
// Any failure is a model init error and should stop the process.
func NewGeminiGateway(ctx context.Context, opts GeminiOptions) (*GeminiGateway, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = httpclient.New()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, apperrors.NewModelInitError("failed to create Gemini client", "MODEL_CLIENT_FAILED", err)
	}

	return newResolvedGateway(ctx, client.Models, client.Models, opts.Model)
}

func newResolvedGateway(ctx context.Context, resolver modelResolver, models contentGenerator, model string) (*GeminiGateway, error) {
	if _, err := resolver.Get(httpclient.WithProvider(ctx, "Gemini"), model, nil); err != nil {
		return nil, apperrors.NewModelInitError("failed to load model "+model, "MODEL_NOT_AVAILABLE", err)
	}
	return newGeminiGateway(models, model), nil
}

func newGeminiGateway(models contentGenerator, model string) *GeminiGateway {
	return &GeminiGateway{
		models: models,
		model:  model,
		tracer: telemetry.Tracer("github.com/socialchef/sous/internal/services/recipe"),
	}
}

// Model returns the resolved model identifier.
func (g *GeminiGateway) Model() string {
	return g.model
}

// Generate makes exactly one GenerateContent call with the prompt as the only
// user content. There is no retry, history or streaming.
func (g *GeminiGateway) Generate(ctx context.Context, prompt string) Result {
	ctx, span := g.tracer.Start(ctx, "recipe.generate", trace.WithAttributes(
		attribute.String("ai.provider", providerName),
		attribute.String("ai.model", g.model),
		attribute.Int("ai.prompt_length", len(prompt)),
	))
	defer span.End()

	startTime := time.Now()
	resp, err := g.models.GenerateContent(
		httpclient.WithProvider(ctx, "Gemini"),
		g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		nil,
	)
	duration := time.Since(startTime).Seconds()

	var result Result
	if err != nil {
		result = failedFromError(err)
	} else {
		result = resultFromResponse(resp)
	}

	attrs := []attribute.KeyValue{
		attribute.String("provider", providerName),
		attribute.String("outcome", string(result.Outcome)),
	}
	metrics.AIGenerationDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
	metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
	metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))

	span.SetAttributes(attribute.String("ai.outcome", string(result.Outcome)))

	switch result.Outcome {
	case OutcomeSuccess:
		slog.InfoContext(ctx, "Recipe generated",
			"model", g.model,
			"duration_s", duration,
			"text_length", len(result.Text),
			logger.WithTraceContext(ctx))
	case OutcomeBlocked:
		slog.WarnContext(ctx, "Prompt blocked by model",
			"model", g.model,
			"block_reason", result.BlockReason,
			"safety_ratings", len(result.SafetyRatings),
			logger.WithTraceContext(ctx))
	case OutcomeError:
		span.RecordError(err)
		span.SetStatus(codes.Error, result.Err.Message)
		slog.ErrorContext(ctx, "Recipe generation failed",
			"model", g.model,
			"error_kind", result.Err.Kind,
			"error", result.Err.Message,
			"duration_s", duration,
			logger.WithTraceContext(ctx))
		sentry.CaptureError(ctx, apperrors.NewTransportError("recipe generation failed", "GENERATION_FAILED", result.Err.StatusCode, err), map[string]string{
			"provider":   providerName,
			"error_kind": result.Err.Kind,
		})
	}

	return result
}

func failedFromError(err error) Result {
	pe := ClassifyError(err)
	return Failed(&TransportError{
		Message:    pe.Message,
		Detail:     pe.Detail,
		Kind:       pe.Kind,
		StatusCode: pe.StatusCode,
	})
}

// resultFromResponse decides once which variant a response maps to, so
// nothing downstream needs to look at the SDK's optional fields.
func resultFromResponse(resp *genai.GenerateContentResponse) Result {
	if resp == nil {
		return Failed(&TransportError{Message: "empty response from model", Kind: KindUnknown})
	}

	if text, ok := candidateText(resp); ok {
		return Succeeded(text)
	}

	if fb := resp.PromptFeedback; fb != nil {
		return Blocked(string(fb.BlockReason), toSafetyRatings(fb.SafetyRatings))
	}

	// Responses blocked after generation started carry the reason on the candidate instead.
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		c := resp.Candidates[0]
		return Blocked(string(c.FinishReason), toSafetyRatings(c.SafetyRatings))
	}

	return Blocked("", nil)
}

// candidateText concatenates the text parts of the first candidate, skipping
// thought summaries. ok is false when the candidate carries no text at all.
func candidateText(resp *genai.GenerateContentResponse) (string, bool) {
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", false
	}

	var sb strings.Builder
	found := false
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
		found = true
	}
	return sb.String(), found
}

func toSafetyRatings(ratings []*genai.SafetyRating) []SafetyRating {
	if len(ratings) == 0 {
		return nil
	}
	out := make([]SafetyRating, 0, len(ratings))
	for _, r := range ratings {
		if r == nil {
			continue
		}
		out = append(out, SafetyRating{
			Category:    string(r.Category),
			Probability: string(r.Probability),
		})
	}
	return out
}
