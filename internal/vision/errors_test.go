package vision_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"checkdesk/internal/vision"
)

func TestNewRateLimitError_DefaultRetryAfter(t *testing.T) {
	err := vision.NewRateLimitError("openai", errors.New("429"), 0)
	assert.Equal(t, 60*time.Second, err.RetryAfter)

	err = vision.NewRateLimitError("openai", errors.New("429"), -5)
	assert.Equal(t, 60*time.Second, err.RetryAfter)
}

func TestNewRateLimitError_ExplicitRetryAfter(t *testing.T) {
	err := vision.NewRateLimitError("claude", errors.New("429"), 30)
	assert.Equal(t, 30*time.Second, err.RetryAfter)
	assert.Equal(t, "claude", err.Provider)
}

func TestRateLimitError_Unwrap(t *testing.T) {
	inner := errors.New("too many requests")
	err := vision.NewRateLimitError("openai", inner, 10)
	assert.ErrorIs(t, err, inner)
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, vision.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, vision.ParseRetryAfterHeader("Wed, 21 Oct 2026 07:28:00 GMT"))
	assert.Equal(t, 120, vision.ParseRetryAfterHeader("120"))
}
