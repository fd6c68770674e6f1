package recipe

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Error kinds reported by ClassifyError.
const (
	KindRateLimit      = "rate_limit"
	KindQuotaExhausted = "quota_exhausted"
	KindServerError    = "server_error"
	KindClientError    = "client_error"
	KindTimeout        = "timeout"
	KindUnknown        = "unknown"
)

// ProviderError represents a classified error from the model service
type ProviderError struct {
	Kind       string
	Message    string
	Detail     string
	StatusCode int
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return e.Message
}

// asAPIError extracts the SDK's structured error, whichever way it was wrapped.
func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}

// ClassifyError analyzes an error and returns a ProviderError with classification
func ClassifyError(err error) *ProviderError {
	if err == nil {
		return nil
	}

	pe := &ProviderError{Kind: KindUnknown, Message: err.Error()}

	if apiErr, ok := asAPIError(err); ok {
		pe.Detail = apiErr.Message
		pe.StatusCode = apiErr.Code
		pe.Kind = kindFromStatus(apiErr.Code, apiErr.Status+" "+apiErr.Message)
		if pe.Kind != KindUnknown {
			return pe
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		pe.Kind = KindTimeout
		return pe
	}

	msg := err.Error()

	switch {
	case containsAny(msg, "quota", "resource_exhausted", "billing"):
		pe.Kind = KindQuotaExhausted
	case containsAny(msg, "status 429", "HTTP 429", "rate limit", "too many requests"):
		pe.Kind = KindRateLimit
	case containsAny(msg, "timeout", "deadline exceeded"):
		pe.Kind = KindTimeout
	case containsAny(msg, "status 5", "HTTP 5", "server error", "internal error", "unavailable"):
		pe.Kind = KindServerError
	case containsAny(msg, "status 4", "HTTP 4", "bad request", "invalid argument", "unauthorized", "forbidden", "permission denied", "api key"):
		pe.Kind = KindClientError
	}

	return pe
}

func kindFromStatus(code int, text string) string {
	switch {
	case code == http.StatusTooManyRequests:
		if containsAny(text, "quota", "resource_exhausted") {
			return KindQuotaExhausted
		}
		return KindRateLimit
	case code == http.StatusGatewayTimeout:
		return KindTimeout
	case code >= 500:
		return KindServerError
	case code >= 400:
		return KindClientError
	default:
		return KindUnknown
	}
}

// containsAny reports whether s contains any of the substrings, ignoring case
func containsAny(s string, substrs ...string) bool {
	s = strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
