package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestDepError_Error(t *testing.T) {
	tests := []struct {
		name      string
		code      ErrorCode
		message   string
		cause     error
		wantParts []string
	}{
		{
			name:      "with cause",
			code:      ParseError,
			message:   "failed to parse app/views.py",
			cause:     errors.New("unexpected token"),
			wantParts: []string{"PARSE_ERROR", "failed to parse app/views.py", "unexpected token"},
		},
		{
			name:      "without cause",
			code:      ModuleNotFound,
			message:   "Module 'app.missing' not found",
			cause:     nil,
			wantParts: []string{"MODULE_NOT_FOUND", "Module 'app.missing' not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Wrap(tt.code, tt.message, tt.cause)
			got := err.Error()

			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, want to contain %q", got, part)
				}
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("app.services.billing")

	if err.Code != ModuleNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ModuleNotFound)
	}
	want := "Module 'app.services.billing' not found"
	if err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
}

func TestDepError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(InternalError, "something went wrong", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}

	errNoCause := New(ConfigurationError, "bad config")
	if errNoCause.Unwrap() != nil {
		t.Errorf("Unwrap() on error without cause should return nil")
	}
}

func TestDepError_WithDetails(t *testing.T) {
	err := New(InvalidFilterPattern, "bad pattern")
	details := map[string]string{"pattern": "[unclosed"}

	result := err.WithDetails(details)

	if result != err {
		t.Error("WithDetails should return the same error for chaining")
	}
	if err.Details == nil {
		t.Error("Details should be set")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"dep error", NotFound("x"), ModuleNotFound},
		{"plain error", errors.New("boom"), InternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ModuleNotFound,
		ConstructionError,
		InvalidFilterPattern,
		ConfigurationError,
		ParseError,
		ManifestError,
		ExportError,
		InternalError,
	}

	seen := make(map[ErrorCode]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %v", code)
		}
		seen[code] = true

		if string(code) == "" {
			t.Error("Error code should not be empty")
		}
	}
}
