package extraction

import (
	"strings"

	"property-backend/internal/schema"
)

// Normalize turns raw OCR output for one document into a typed extraction
// result. Each raw key is classified into exactly one canonical field of the
// document type's schema, or preserved verbatim as an unmatched entry.
//
// Tie-break: when several raw keys resolve to the same canonical field, the
// first pair in OCR output order wins and later duplicates are ignored.
// Coercion failures never abort the extraction; the field is recorded
// unparsed and simply stays out of aggregation.
func Normalize(docType schema.DocumentType, pairs []KeyValue, rawText string) Result {
	rawText = strings.TrimSpace(rawText)

	// Scanned statements often come back as plain lines with no structured
	// key/value blocks. Derive pairs from the raw text before giving up.
	if len(pairs) == 0 && rawText != "" {
		pairs = PairsFromText(rawText)
	}

	fields := make(map[string]Value)
	unmatched := make(map[string]string)

	for _, kv := range pairs {
		key := strings.TrimSpace(kv.Key)
		if key == "" {
			continue
		}
		field, ok := schema.Match(docType, key)
		if !ok {
			if _, seen := unmatched[key]; !seen {
				unmatched[key] = strings.TrimSpace(kv.Value)
			}
			continue
		}
		if _, seen := fields[field.Name]; seen {
			continue
		}
		fields[field.Name] = coerce(field.Kind, kv.Value)
	}

	result := Result{RawText: rawText}
	if len(fields) > 0 {
		result.Fields = fields
	}
	if len(unmatched) > 0 {
		result.Unmatched = unmatched
	}

	result.Status = StatusNoFieldsFound
	if rawText != "" || anyParsed(fields) {
		result.Status = StatusSuccess
	}
	return result
}

func anyParsed(fields map[string]Value) bool {
	for _, v := range fields {
		if v.Parsed {
			return true
		}
	}
	return false
}

func coerce(kind schema.Kind, raw string) Value {
	trimmed := strings.TrimSpace(raw)
	v := Value{Kind: kind, Raw: trimmed}
	switch kind {
	case schema.KindMoney:
		if amount, ok := ParseMoney(trimmed); ok {
			v.Amount = &amount
			v.Parsed = true
		}
	case schema.KindDate:
		if date, ok := ParseDate(trimmed); ok {
			v.Date = date.Format("2006-01-02")
			v.Parsed = true
		}
	default:
		if trimmed != "" {
			v.Text = trimmed
			v.Parsed = true
		}
	}
	return v
}
