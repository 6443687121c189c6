package properties

import (
	"time"

	"github.com/shopspring/decimal"

	"property-backend/internal/extraction"
	"property-backend/internal/schema"
)

// Address is the structured mailing address of a property.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// Property is a rental property owned by a user. RentalIncome and Expenses
// are derived aggregates: they always equal the cash-flow totals recomputed
// over the attached documents, and are only ever written together with the
// document collection in a single versioned save.
type Property struct {
	ID            string
	OwnerID       string
	Name          string
	Address       Address
	PurchasePrice decimal.Decimal
	CurrentValue  *decimal.Decimal
	RentalIncome  decimal.Decimal
	Expenses      decimal.Decimal
	Documents     []Document
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Document is an uploaded financial document attached to exactly one
// property. It is created only by an upload and removed only by an explicit
// delete; the extraction result is terminal once set.
type Document struct {
	ID            string              `json:"id"`
	PropertyID    string              `json:"propertyId"`
	Type          schema.DocumentType `json:"documentType"`
	FileName      string              `json:"fileName"`
	StorageKey    string              `json:"storageKey,omitempty"`
	ContentType   string              `json:"contentType,omitempty"`
	SizeBytes     int64               `json:"sizeBytes"`
	StatementDate string              `json:"statementDate,omitempty"`
	Extraction    extraction.Result   `json:"extraction"`
	UploadedAt    time.Time           `json:"uploadedAt"`
}

// FindDocument locates a document by ID within the property's collection.
func (p *Property) FindDocument(documentID string) (Document, int, bool) {
	for i, doc := range p.Documents {
		if doc.ID == documentID {
			return doc, i, true
		}
	}
	return Document{}, -1, false
}
