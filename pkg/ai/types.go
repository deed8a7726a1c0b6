package ai

import "context"

// VerificationInput identifies the stored document to inspect.
type VerificationInput struct {
	ImageURL     string
	DocumentType string
	ClaimedName  string
}

// Verdict is the adapter's output: a verified boolean plus exactly one of
// Message (success) or Error (rejection), and whatever fields the model extracted.
type Verdict struct {
	Verified      bool                   `json:"verified"`
	Message       string                 `json:"message,omitempty"`
	Error         string                 `json:"error,omitempty"`
	ExtractedData map[string]interface{} `json:"extractedData,omitempty"`
}

// DocumentVerifier inspects a document image and returns a verdict.
// Implementations absorb transport and parsing failures: a Verdict comes
// back on every call, never a panic or an error.
type DocumentVerifier interface {
	Verify(ctx context.Context, input VerificationInput) Verdict
}
