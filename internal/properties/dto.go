package properties

import (
	"time"

	"property-backend/internal/extraction"
)

// AddressResponse mirrors the stored address.
type AddressResponse struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// ExtractionResponse is the outward-facing shape of a document's
// extraction outcome. Amounts are decimal strings.
type ExtractionResponse struct {
	Status       string            `json:"status"`
	Fields       map[string]string `json:"fields,omitempty"`
	Unmatched    map[string]string `json:"unmatched,omitempty"`
	Confidence   float64           `json:"confidence,omitempty"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
}

// DocumentResponse is the outward-facing representation of a document record.
type DocumentResponse struct {
	DocumentID    string             `json:"documentId"`
	DocumentType  string             `json:"documentType"`
	FileName      string             `json:"fileName"`
	ContentType   string             `json:"contentType"`
	SizeBytes     int64              `json:"sizeBytes"`
	StatementDate string             `json:"statementDate,omitempty"`
	Extraction    ExtractionResponse `json:"extraction"`
	UploadedAt    time.Time          `json:"uploadedAt"`
}

// PropertyResponse is the outward-facing representation of a property.
type PropertyResponse struct {
	PropertyID    string             `json:"propertyId"`
	Name          string             `json:"name"`
	Address       AddressResponse    `json:"address"`
	PurchasePrice string             `json:"purchasePrice"`
	CurrentValue  *string            `json:"currentValue"`
	RentalIncome  string             `json:"rentalIncome"`
	Expenses      string             `json:"expenses"`
	NetCashFlow   string             `json:"netCashFlow"`
	Documents     []DocumentResponse `json:"documents"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// ToResponse converts a property to its API shape.
func ToResponse(p Property) PropertyResponse {
	docs := make([]DocumentResponse, 0, len(p.Documents))
	for _, d := range p.Documents {
		docs = append(docs, ToDocumentResponse(d))
	}

	var currentValue *string
	if p.CurrentValue != nil {
		s := p.CurrentValue.String()
		currentValue = &s
	}

	return PropertyResponse{
		PropertyID:    p.ID,
		Name:          p.Name,
		Address:       AddressResponse(p.Address),
		PurchasePrice: p.PurchasePrice.String(),
		CurrentValue:  currentValue,
		RentalIncome:  p.RentalIncome.String(),
		Expenses:      p.Expenses.String(),
		NetCashFlow:   p.RentalIncome.Sub(p.Expenses).String(),
		Documents:     docs,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToDocumentResponse converts a document record to its API shape.
func ToDocumentResponse(d Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:    d.ID,
		DocumentType:  string(d.Type),
		FileName:      d.FileName,
		ContentType:   d.ContentType,
		SizeBytes:     d.SizeBytes,
		StatementDate: d.StatementDate,
		Extraction:    toExtractionResponse(d.Extraction),
		UploadedAt:    d.UploadedAt,
	}
}

func toExtractionResponse(r extraction.Result) ExtractionResponse {
	var fields map[string]string
	if len(r.Fields) > 0 {
		fields = make(map[string]string, len(r.Fields))
		for name, v := range r.Fields {
			fields[name] = renderValue(v)
		}
	}
	return ExtractionResponse{
		Status:       string(r.Status),
		Fields:       fields,
		Unmatched:    r.Unmatched,
		Confidence:   r.Confidence,
		ErrorMessage: r.ErrorMessage,
	}
}

func renderValue(v extraction.Value) string {
	if !v.Parsed {
		return v.Raw
	}
	switch {
	case v.Amount != nil:
		return v.Amount.String()
	case v.Date != "":
		return v.Date
	default:
		return v.Text
	}
}
