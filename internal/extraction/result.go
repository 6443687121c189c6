package extraction

import (
	"github.com/shopspring/decimal"

	"property-backend/internal/schema"
)

// Status is the terminal classification of a document's extraction outcome.
// It never transitions once set on a document.
type Status string

const (
	StatusSuccess       Status = "success"
	StatusFailed        Status = "failed"
	StatusUnavailable   Status = "unavailable_no_credentials"
	StatusNoFieldsFound Status = "no_fields_found"
)

// KeyValue is one raw label/value pair in OCR output order. Source order is
// significant: when several raw keys resolve to the same canonical field,
// the first one encountered wins.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Value is a typed canonical field value. Raw always preserves the source
// string; Parsed reports whether coercion produced a usable typed value.
// Unparsed values stay on the document but never contribute to aggregation.
type Value struct {
	Kind   schema.Kind      `json:"kind"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Date   string           `json:"date,omitempty"`
	Text   string           `json:"text,omitempty"`
	Raw    string           `json:"raw"`
	Parsed bool             `json:"parsed"`
}

// Result is the normalized extraction outcome attached to a document.
// Fields holds canonical fields; Unmatched preserves raw keys that resolved
// to no canonical field so no OCR data is silently dropped.
type Result struct {
	Status           Status            `json:"status"`
	Fields           map[string]Value  `json:"fields,omitempty"`
	Unmatched        map[string]string `json:"unmatched,omitempty"`
	RawText          string            `json:"rawText,omitempty"`
	Confidence       float64           `json:"confidence,omitempty"`
	ErrorKind        string            `json:"errorKind,omitempty"`
	ErrorMessage     string            `json:"errorMessage,omitempty"`
	TechnicalDetails string            `json:"technicalDetails,omitempty"`
}

// Failure builds a pass-through result for an OCR collaborator error. The
// normalizer itself never produces these statuses; they are recorded when
// the collaborator call failed before normalization could be attempted.
func Failure(status Status, errorKind, message, details string) Result {
	return Result{
		Status:           status,
		ErrorKind:        errorKind,
		ErrorMessage:     message,
		TechnicalDetails: details,
	}
}

// Amount returns the parsed monetary value of a canonical field, or zero if
// the field is absent or unparseable.
func (r Result) Amount(field string) decimal.Decimal {
	v, ok := r.Fields[field]
	if !ok || !v.Parsed || v.Amount == nil {
		return decimal.Zero
	}
	return *v.Amount
}
