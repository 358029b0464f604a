package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dataflow-systems/integration-stack/common/middleware"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), "level %q", tt.input)
	}
}

func TestWithContextAttachesRequestID(t *testing.T) {
	logger := New(slog.LevelInfo, "json")

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	withID := logger.WithContext(ctx)
	assert.NotNil(t, withID)

	// Without a request ID the base logger comes back untouched.
	assert.Same(t, logger.Logger, logger.WithContext(context.Background()))
}

func TestErrAttribute(t *testing.T) {
	attr := Err(assert.AnError)
	assert.Equal(t, FieldError, attr.Key)
	assert.Equal(t, assert.AnError.Error(), attr.Value.String())

	assert.Equal(t, "", Err(nil).Value.String())
}
