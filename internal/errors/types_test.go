package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := &AppError{
		Message: "something went wrong",
	}
	if err.Error() != "something went wrong" {
		t.Errorf("expected 'something went wrong', got %v", err.Error())
	}

	wrappedErr := errors.New("underlying error")
	errWithWrap := &AppError{
		Message: "failed operation",
		Err:     wrappedErr,
	}
	expected := "failed operation: underlying error"
	if errWithWrap.Error() != expected {
		t.Errorf("expected %q, got %q", expected, errWithWrap.Error())
	}
	if !errors.Is(errWithWrap, wrappedErr) {
		t.Error("expected errors.Is to reach the wrapped error")
	}
}

func TestAppError_Code(t *testing.T) {
	err := &AppError{
		ErrorCode: "ERR_CODE_123",
	}
	if err.Code() != "ERR_CODE_123" {
		t.Errorf("expected ERR_CODE_123, got %v", err.Code())
	}
}

func TestAppError_IsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want bool
	}{
		{
			name: "rate limited transport error is retryable",
			err: &AppError{
				Type:       ErrorTypeTransport,
				StatusCode: http.StatusTooManyRequests,
			},
			want: true,
		},
		{
			name: "bad gateway transport error is retryable",
			err:  NewTransportError("upstream failed", "GENERATION_FAILED", 0, nil),
			want: true,
		},
		{
			name: "rejected request is not retryable",
			err:  NewTransportError("bad key", "GENERATION_FAILED", http.StatusBadRequest, nil),
			want: false,
		},
		{
			name: "validation error is not retryable",
			err: &AppError{
				Type:       ErrorTypeValidation,
				StatusCode: http.StatusBadRequest,
			},
			want: false,
		},
		{
			name: "internal error is not retryable",
			err:  NewInternalError("render failed", "RENDER_FAILED", nil),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.IsRetryable(); got != tt.want {
				t.Errorf("AppError.IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("invalid input", "VALIDATION_FAILED", "Check your fields")
	if err.Type != ErrorTypeValidation {
		t.Errorf("expected TypeValidation, got %v", err.Type)
	}
	if err.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err.StatusCode)
	}
	if err.RecoverySuggestion() != "Check your fields" {
		t.Errorf("expected 'Check your fields', got %v", err.RecoverySuggestion())
	}
}

func TestNewModelInitError(t *testing.T) {
	underlying := errors.New("model not found")
	err := NewModelInitError("could not load model", "MODEL_NOT_FOUND", underlying)
	if err.Type != ErrorTypeModelInit {
		t.Errorf("expected TypeModelInit, got %v", err.Type)
	}
	if err.Err != underlying {
		t.Error("underlying error not correctly wrapped")
	}
	if err.RecoverySuggestion() == "" {
		t.Error("expected a recovery hint for model init errors")
	}
}

func TestNewTransportError(t *testing.T) {
	underlying := errors.New("connection reset")
	err := NewTransportError("could not reach model", "GENERATION_FAILED", 0, underlying)
	if err.Type != ErrorTypeTransport {
		t.Errorf("expected TypeTransport, got %v", err.Type)
	}
	if err.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502, got %v", err.StatusCode)
	}
	if err.Err != underlying {
		t.Error("underlying error not correctly wrapped")
	}
}
