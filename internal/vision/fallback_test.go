package vision_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"checkdesk/internal/port"
	"checkdesk/internal/vision"
	"checkdesk/mocks"
)

func TestFallbackClient_PrimarySucceeds(t *testing.T) {
	primary := new(mocks.MockVisionClient)
	secondary := new(mocks.MockVisionClient)
	primary.On("Complete", mock.Anything, mock.Anything).Return(`{"ok":true}`, nil)

	fc := vision.NewFallbackClient(
		[]port.VisionClient{primary, secondary},
		[]string{"openai", "claude"},
	)

	text, err := fc.Complete(context.Background(), port.CompletionInput{})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)
	secondary.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestFallbackClient_FallsBackOnError(t *testing.T) {
	primary := new(mocks.MockVisionClient)
	secondary := new(mocks.MockVisionClient)
	primary.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("boom"))
	secondary.On("Complete", mock.Anything, mock.Anything).Return("from secondary", nil)

	fc := vision.NewFallbackClient(
		[]port.VisionClient{primary, secondary},
		[]string{"openai", "claude"},
	)

	text, err := fc.Complete(context.Background(), port.CompletionInput{})

	require.NoError(t, err)
	assert.Equal(t, "from secondary", text)
}

func TestFallbackClient_AllFail(t *testing.T) {
	primary := new(mocks.MockVisionClient)
	secondary := new(mocks.MockVisionClient)
	primary.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("boom one"))
	secondary.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("boom two"))

	fc := vision.NewFallbackClient(
		[]port.VisionClient{primary, secondary},
		[]string{"openai", "claude"},
	)

	_, err := fc.Complete(context.Background(), port.CompletionInput{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all vision providers failed")
	assert.Contains(t, err.Error(), "boom two")
}

func TestFallbackClient_RateLimitOpensCircuit(t *testing.T) {
	primary := new(mocks.MockVisionClient)
	secondary := new(mocks.MockVisionClient)
	primary.On("Complete", mock.Anything, mock.Anything).
		Return("", vision.NewRateLimitError("openai", errors.New("429"), 60)).Once()
	secondary.On("Complete", mock.Anything, mock.Anything).Return("ok", nil).Twice()

	fc := vision.NewFallbackClient(
		[]port.VisionClient{primary, secondary},
		[]string{"openai", "claude"},
	)

	// First call trips the primary's circuit.
	text, err := fc.Complete(context.Background(), port.CompletionInput{})
	require.NoError(t, err)
	assert.Equal(t, "ok", text)

	// Second call skips the primary entirely.
	text, err = fc.Complete(context.Background(), port.CompletionInput{})
	require.NoError(t, err)
	assert.Equal(t, "ok", text)

	primary.AssertNumberOfCalls(t, "Complete", 1)
	secondary.AssertNumberOfCalls(t, "Complete", 2)
}

func TestFallbackClient_AllRateLimited(t *testing.T) {
	primary := new(mocks.MockVisionClient)
	primary.On("Complete", mock.Anything, mock.Anything).
		Return("", vision.NewRateLimitError("openai", errors.New("429"), 30))

	fc := vision.NewFallbackClient([]port.VisionClient{primary}, []string{"openai"})

	_, err := fc.Complete(context.Background(), port.CompletionInput{})

	var rlErr *vision.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "all", rlErr.Provider)
}
