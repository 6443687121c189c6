package ocr

import (
	"context"
	"fmt"

	"property-backend/internal/extraction"
)

// ErrorKind classifies collaborator failures so the document record manager
// can map them onto terminal extraction statuses.
type ErrorKind string

const (
	KindCredentialsMissing   ErrorKind = "credentials-missing"
	KindSubscriptionRequired ErrorKind = "subscription-required"
	KindAccessDenied         ErrorKind = "access-denied"
	KindGeneric              ErrorKind = "generic"
)

// Error is a structured OCR collaborator failure.
type Error struct {
	Kind             ErrorKind
	Message          string
	TechnicalDetails string
}

func (e *Error) Error() string {
	if e.TechnicalDetails != "" {
		return fmt.Sprintf("ocr: %s: %s (%s)", e.Kind, e.Message, e.TechnicalDetails)
	}
	return fmt.Sprintf("ocr: %s: %s", e.Kind, e.Message)
}

// Output is the successful result of one OCR call: key/value pairs in
// reading order plus the document's full text.
type Output struct {
	KeyValues  []extraction.KeyValue
	RawText    string
	Confidence float64
}

// Client is the external OCR collaborator. Implementations must honor
// context cancellation; the caller bounds each call with a timeout.
type Client interface {
	Extract(ctx context.Context, fileBytes []byte, mimeType string) (Output, error)
}
