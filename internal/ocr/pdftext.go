package ocr

import (
	"bytes"
	"context"
	"io"

	"github.com/ledongthuc/pdf"
)

// PDFText is a local OCR provider that pulls the embedded text layer out of
// PDFs with github.com/ledongthuc/pdf. It produces raw text only; the
// normalizer's raw-text parsing recovers key/value pairs from it. Meant for
// development without AWS access, not for scanned images.
type PDFText struct{}

func (PDFText) Extract(ctx context.Context, fileBytes []byte, mimeType string) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	if mimeType != "application/pdf" {
		return Output{}, &Error{
			Kind:    KindGeneric,
			Message: "local text extraction supports PDF files only",
		}
	}

	reader, err := pdf.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return Output{}, &Error{
			Kind:             KindGeneric,
			Message:          "unable to read PDF",
			TechnicalDetails: err.Error(),
		}
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return Output{}, &Error{
			Kind:             KindGeneric,
			Message:          "unable to extract PDF text",
			TechnicalDetails: err.Error(),
		}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return Output{}, &Error{
			Kind:             KindGeneric,
			Message:          "unable to extract PDF text",
			TechnicalDetails: err.Error(),
		}
	}
	return Output{RawText: buf.String()}, nil
}

var _ Client = PDFText{}
