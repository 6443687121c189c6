package ocr

import "context"

// Disabled is the collaborator used when no OCR provider is configured.
// Every call reports missing credentials so uploads still persist with the
// unavailable terminal status.
type Disabled struct{}

func (Disabled) Extract(ctx context.Context, fileBytes []byte, mimeType string) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	return Output{}, &Error{
		Kind:    KindCredentialsMissing,
		Message: "OCR credentials are not configured. Set AWS credentials or OCR_PROVIDER=pdftext.",
	}
}

var _ Client = Disabled{}
