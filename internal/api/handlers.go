package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/socialchef/sous/internal/config"
	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/logger"
	"github.com/socialchef/sous/internal/metrics"
	"github.com/socialchef/sous/internal/sentry"
	"github.com/socialchef/sous/internal/services/ai"
	"github.com/socialchef/sous/internal/services/recipe"
	"github.com/socialchef/sous/internal/validation"
	"github.com/socialchef/sous/internal/web"
)

type Server struct {
	cfg      *config.Config
	gateway  recipe.Gateway
	renderer *web.Renderer
}

func NewServer(cfg *config.Config, gateway recipe.Gateway, renderer *web.Renderer) *Server {
	return &Server{
		cfg:      cfg,
		gateway:  gateway,
		renderer: renderer,
	}
}

// HandleIndex renders the empty form.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, web.NewPage(ai.FormInput{Cuisine: ai.Cuisines()[0], Difficulty: ai.DefaultDifficulty}))
}

// HandleSuggest handles one form submission. A failed check re-renders the form
// with a warning and the user's input; nothing is sent to the model.
func (s *Server) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	in := parseFormInput(r)
	page := web.NewPage(in)

	if appErr := s.check(r, in); appErr != nil {
		page.Warnings = []string{appErr.Message}
		s.render(w, r, page)
		return
	}

	prompt := ai.BuildPrompt(in)
	page.Prompt = prompt

	result := s.generate(r, prompt)

	view, err := s.renderer.ResultView(result)
	if err != nil {
		s.fail(w, r, apperrors.NewInternalError("Failed to render model output", "RENDER_FAILED", err))
		return
	}
	page.Result = view

	s.render(w, r, page)
}

type SuggestResponse struct {
	ID              string                 `json:"id"`
	Prompt          string                 `json:"prompt"`
	DifficultyLabel string                 `json:"difficulty_label"`
	Outcome         recipe.Outcome         `json:"outcome"`
	Text            string                 `json:"text,omitempty"`
	BlockReason     string                 `json:"block_reason,omitempty"`
	SafetyRatings   []recipe.SafetyRating  `json:"safety_ratings,omitempty"`
	Error           *recipe.TransportError `json:"error,omitempty"`
}

type SuggestRequest struct {
	Ingredients    string `json:"ingredients"`
	Cuisine        string `json:"cuisine"`
	Difficulty     *int   `json:"difficulty"`
	HasRestriction bool   `json:"has_restriction"`
	Restriction    string `json:"restriction"`
}

// formInput mirrors parseFormInput: an absent difficulty takes the default.
func (req SuggestRequest) formInput() ai.FormInput {
	in := ai.FormInput{
		Ingredients:    req.Ingredients,
		Cuisine:        ai.Cuisine(req.Cuisine),
		Difficulty:     ai.DefaultDifficulty,
		HasRestriction: req.HasRestriction,
	}
	if cuisine, ok := ai.ParseCuisine(req.Cuisine); ok {
		in.Cuisine = cuisine
	}
	if req.Difficulty != nil {
		in.Difficulty = *req.Difficulty
	}
	if in.HasRestriction {
		in.Restriction = req.Restriction
	}
	return in
}

// HandleSuggestAPI runs the same flow as the form for a JSON body.
func (s *Server) HandleSuggestAPI(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apperrors.NewValidationError("Invalid request body", "INVALID_BODY", ""))
		return
	}
	in := req.formInput()

	if appErr := s.check(r, in); appErr != nil {
		writeJSON(w, appErr.StatusCode, appErr)
		return
	}

	id := uuid.New().String()
	prompt := ai.BuildPrompt(in)

	slog.InfoContext(r.Context(), "Suggestion requested",
		"submission_id", id,
		"cuisine", in.Cuisine,
		"difficulty", in.Difficulty,
		logger.WithTraceContext(r.Context()))

	result := s.generate(r, prompt)

	resp := SuggestResponse{
		ID:              id,
		Prompt:          prompt,
		DifficultyLabel: ai.DifficultyLabel(in.Difficulty),
		Outcome:         result.Outcome,
		Text:            result.Text,
		BlockReason:     result.BlockReason,
		SafetyRatings:   result.SafetyRatings,
		Error:           result.Err,
	}

	status := http.StatusOK
	if result.Outcome == recipe.OutcomeError {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, resp)
}

// HandleHealth is the liveness probe.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) check(r *http.Request, in ai.FormInput) *apperrors.AppError {
	appErr := validation.CheckForm(in)
	if appErr == nil {
		return nil
	}
	metrics.ValidationRejectionsTotal.Add(r.Context(), 1,
		metric.WithAttributes(attribute.String("error_code", appErr.Code())))
	slog.InfoContext(r.Context(), "Submission rejected",
		"error_code", appErr.Code(),
		logger.WithTraceContext(r.Context()))
	return appErr
}

func (s *Server) generate(r *http.Request, prompt string) recipe.Result {
	result := s.gateway.Generate(r.Context(), prompt)
	metrics.SuggestionsTotal.Add(r.Context(), 1,
		metric.WithAttributes(attribute.String("outcome", string(result.Outcome))))
	return result
}

// render writes nothing on failure, so the 500 below is still possible.
func (s *Server) render(w http.ResponseWriter, r *http.Request, page web.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, page); err != nil {
		s.fail(w, r, apperrors.NewInternalError("Failed to render page", "RENDER_FAILED", err))
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, appErr *apperrors.AppError) {
	slog.ErrorContext(r.Context(), appErr.Message,
		"error_code", appErr.Code(),
		"error", appErr.Err,
		logger.WithTraceContext(r.Context()))
	sentry.CaptureError(r.Context(), appErr, nil)
	http.Error(w, appErr.Message, appErr.StatusCode)
}

// parseFormInput reads the posted form. A missing difficulty falls back to the
// default; a non-numeric one is left at 0 so the gate rejects it. The
// restriction text is only read when the checkbox is ticked.
func parseFormInput(r *http.Request) ai.FormInput {
	in := ai.FormInput{
		Ingredients: r.PostFormValue("ingredients"),
		Difficulty:  ai.DefaultDifficulty,
	}

	if cuisine, ok := ai.ParseCuisine(r.PostFormValue("cuisine")); ok {
		in.Cuisine = cuisine
	}

	if raw := strings.TrimSpace(r.PostFormValue("difficulty")); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil {
			level = 0
		}
		in.Difficulty = level
	}

	switch r.PostFormValue("has_restriction") {
	case "on", "true", "1":
		in.HasRestriction = true
		in.Restriction = r.PostFormValue("restriction")
	}

	return in
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
