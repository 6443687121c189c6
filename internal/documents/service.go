package documents

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"property-backend/internal/cashflow"
	"property-backend/internal/extraction"
	"property-backend/internal/ocr"
	"property-backend/internal/properties"
	"property-backend/internal/schema"
	"property-backend/internal/shared/metrics"
	"property-backend/internal/shared/storage/object"
	"property-backend/internal/shared/telemetry"
)

const (
	maxFileSize = 5 << 20 // 5MB

	// Retries absorb version conflicts from concurrent mutations of the
	// same property.
	maxSaveAttempts = 5

	defaultOCRTimeout = 60 * time.Second
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
}

// Service orchestrates one document upload or deletion: store the file,
// run OCR and normalization, then attach the record and recompute the
// property aggregates in a single persisted write.
type Service struct {
	Props      properties.Repo
	Store      object.ObjectStore
	OCR        ocr.Client
	OCRTimeout time.Duration
}

// Upload runs the full pipeline for one file. Extraction failure never
// blocks storage: the document is persisted with a terminal failure
// status and contributes zero to the aggregates.
func (s *Service) Upload(ctx context.Context, ownerID, propertyID, documentType, fileName string, fileBytes []byte) (properties.Document, error) {
	docType, ok := schema.ParseDocumentType(documentType)
	if !ok {
		return properties.Document{}, ErrInvalidInput
	}
	if fileName == "" {
		return properties.Document{}, ErrInvalidInput
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(fileName))] {
		return properties.Document{}, ErrUnsupportedFile
	}
	if len(fileBytes) == 0 {
		return properties.Document{}, ErrEmptyFile
	}
	if len(fileBytes) > maxFileSize {
		return properties.Document{}, ErrFileTooLarge
	}

	// Fail before storing anything if the property does not exist.
	if _, err := s.Props.GetByID(ctx, ownerID, propertyID); err != nil {
		return properties.Document{}, err
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, ownerID, fileName, bytes.NewReader(fileBytes))
	if err != nil {
		return properties.Document{}, err
	}

	result := s.extract(ctx, docType, fileBytes, mimeType)

	doc := properties.Document{
		ID:          uuid.NewString(),
		PropertyID:  propertyID,
		Type:        docType,
		FileName:    fileName,
		StorageKey:  storageKey,
		ContentType: mimeType,
		SizeBytes:   size,
		Extraction:  result,
		UploadedAt:  time.Now().UTC(),
	}
	if when, ok := extraction.StatementDate(result); ok {
		doc.StatementDate = when.Format("2006-01-02")
	}

	if err := s.attach(ctx, ownerID, propertyID, doc); err != nil {
		// The record never made it onto the property, so the stored
		// file is orphaned. Remove it best effort.
		_ = s.Store.Delete(context.WithoutCancel(ctx), storageKey)
		return properties.Document{}, err
	}

	metrics.IncDocumentUploaded()
	telemetry.Info("document uploaded", map[string]any{
		"property_id": propertyID,
		"document_id": doc.ID,
		"status":      string(result.Status),
	})
	return doc, nil
}

// Get returns a single document record.
func (s *Service) Get(ctx context.Context, ownerID, propertyID, documentID string) (properties.Document, error) {
	p, err := s.Props.GetByID(ctx, ownerID, propertyID)
	if err != nil {
		return properties.Document{}, err
	}
	doc, _, ok := p.FindDocument(documentID)
	if !ok {
		return properties.Document{}, ErrNotFound
	}
	return doc, nil
}

// List returns all document records attached to a property.
func (s *Service) List(ctx context.Context, ownerID, propertyID string) ([]properties.Document, error) {
	p, err := s.Props.GetByID(ctx, ownerID, propertyID)
	if err != nil {
		return nil, err
	}
	return p.Documents, nil
}

// Delete removes a document record, recomputes the aggregates, and then
// removes the stored file. Deleting an already removed identifier fails.
func (s *Service) Delete(ctx context.Context, ownerID, propertyID, documentID string) error {
	var storageKey string

	var lastErr error
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		p, err := s.Props.GetByID(ctx, ownerID, propertyID)
		if err != nil {
			return err
		}
		doc, idx, ok := p.FindDocument(documentID)
		if !ok {
			return ErrNotFound
		}
		storageKey = doc.StorageKey

		p.Documents = append(p.Documents[:idx], p.Documents[idx+1:]...)
		cashflow.Apply(&p)

		if _, err := s.Props.Save(ctx, p); err == nil {
			lastErr = nil
			break
		} else if !errors.Is(err, properties.ErrVersionConflict) {
			return err
		} else {
			lastErr = err
		}
	}
	if lastErr != nil {
		return lastErr
	}

	// File removal happens after the record is gone; a leftover object
	// is preferable to a record pointing at nothing.
	if storageKey != "" {
		_ = s.Store.Delete(context.WithoutCancel(ctx), storageKey)
	}

	metrics.IncDocumentDeleted()
	telemetry.Info("document deleted", map[string]any{
		"property_id": propertyID,
		"document_id": documentID,
	})
	return nil
}

// attach appends the document and recomputes aggregates in one write, so
// a document is never persisted without its aggregate recompute.
func (s *Service) attach(ctx context.Context, ownerID, propertyID string, doc properties.Document) error {
	var lastErr error
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		p, err := s.Props.GetByID(ctx, ownerID, propertyID)
		if err != nil {
			return err
		}
		p.Documents = append(p.Documents, doc)
		cashflow.Apply(&p)

		if _, err := s.Props.Save(ctx, p); err == nil {
			return nil
		} else if !errors.Is(err, properties.ErrVersionConflict) {
			return err
		} else {
			lastErr = err
		}
	}
	return lastErr
}

// extract runs the OCR collaborator under its own timeout and maps any
// failure to a terminal extraction status.
func (s *Service) extract(ctx context.Context, docType schema.DocumentType, fileBytes []byte, mimeType string) extraction.Result {
	timeout := s.OCRTimeout
	if timeout <= 0 {
		timeout = defaultOCRTimeout
	}
	octx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	out, err := s.OCR.Extract(octx, fileBytes, mimeType)
	metrics.ObserveExtractionDurationMs(float64(time.Since(start)) / float64(time.Millisecond))
	if err != nil {
		metrics.IncExtractionFailed()
		return failureResult(err)
	}

	result := extraction.Normalize(docType, out.KeyValues, out.RawText)
	result.Confidence = out.Confidence
	if result.Status == extraction.StatusSuccess {
		metrics.IncExtractionSucceeded()
	} else {
		metrics.IncExtractionFailed()
	}
	return result
}

func failureResult(err error) extraction.Result {
	var ocrErr *ocr.Error
	if errors.As(err, &ocrErr) {
		switch ocrErr.Kind {
		case ocr.KindCredentialsMissing, ocr.KindSubscriptionRequired:
			return extraction.Failure(extraction.StatusUnavailable, string(ocrErr.Kind), ocrErr.Message, ocrErr.TechnicalDetails)
		default:
			return extraction.Failure(extraction.StatusFailed, string(ocrErr.Kind), ocrErr.Message, ocrErr.TechnicalDetails)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return extraction.Failure(extraction.StatusFailed, "timeout", "Document processing timed out. Try a smaller or clearer file.", err.Error())
	}
	return extraction.Failure(extraction.StatusFailed, string(ocr.KindGeneric), "Document processing failed.", err.Error())
}
