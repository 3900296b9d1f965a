package providers

import "context"

// ImagePart is an inline image payload attached to a completion request.
type ImagePart struct {
	MIMEType string
	Data     []byte
}

// CompletionRequest is a vendor-agnostic generative request. System may be
// empty; Images is only set for OCR-style operations.
type CompletionRequest struct {
	System string
	Prompt string
	Images []ImagePart
}

// CompletionProvider is one generative-AI vendor. Implementations return the
// raw model text; callers own fence stripping, parsing and validation because
// providers do not guarantee strict JSON-only output.
type CompletionProvider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Complete submits the request and returns the model's text response.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
