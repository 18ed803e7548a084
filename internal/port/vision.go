package port

import "context"

// CompletionInput carries the data needed for a vision-model completion.
// ImageURL is either a publicly reachable URL or a data: URI.
type CompletionInput struct {
	ImageURL string
	Prompt   string
}

// VisionClient abstracts a vision-capable language model. Complete sends
// the image and prompt and returns the raw free-form completion text.
type VisionClient interface {
	Complete(ctx context.Context, input CompletionInput) (string, error)
}
