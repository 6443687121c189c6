package extraction

import (
	"regexp"
	"strings"
	"time"

	"property-backend/internal/schema"
)

var statementDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)statement\s+date[:\s]+([A-Za-z]+\s+\d{1,2},?\s+\d{4})`),
	regexp.MustCompile(`(?i)statement\s+date[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`(?i)\bdate[:\s]+([A-Za-z]+\s+\d{1,2},?\s+\d{4})`),
	regexp.MustCompile(`(?i)\bdate[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
}

// StatementDate recovers the statement date for a document from its
// extraction result: the canonical statement_date field first, then any
// unmatched key that names a statement date, then the raw text.
func StatementDate(res Result) (time.Time, bool) {
	if v, ok := res.Fields[schema.FieldStatementDate]; ok && v.Parsed {
		if t, ok := ParseDate(v.Date); ok {
			return t, true
		}
	}

	for key, value := range res.Unmatched {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "statement") && strings.Contains(lower, "date") {
			if t, ok := ParseDate(value); ok {
				return t, true
			}
		}
	}

	for _, re := range statementDatePatterns {
		match := re.FindStringSubmatch(res.RawText)
		if match == nil {
			continue
		}
		if t, ok := ParseDate(strings.TrimSpace(match[1])); ok {
			return t, true
		}
	}
	return time.Time{}, false
}
