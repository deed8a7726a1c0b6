package dto

import "mime/multipart"

// VerifyDocumentRequest carries the parsed multipart fields of an upload.
type VerifyDocumentRequest struct {
	File          *multipart.FileHeader
	DocType       string
	Email         string
	CandidateName string
}

// VerifyDocumentResponse is the exact contract consumed by the upload form.
// Exactly one of Message or Error is set; the UI renders whichever is present.
type VerifyDocumentResponse struct {
	Verified      bool                   `json:"verified"`
	Message       string                 `json:"message,omitempty"`
	Error         string                 `json:"error,omitempty"`
	ExtractedData map[string]interface{} `json:"extractedData,omitempty"`
	URL           string                 `json:"url,omitempty"`
}
