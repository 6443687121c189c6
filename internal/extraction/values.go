package extraction

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var numericRun = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseMoney parses a monetary string, tolerating currency symbols,
// thousands separators and surrounding text ("$2,500.00", "-$ 150.00",
// "1200 USD"). Parenthesized amounts are treated as negative.
func ParseMoney(raw string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	cleaned = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "").Replace(cleaned)
	cleaned = strings.TrimSpace(cleaned)
	if strings.HasPrefix(cleaned, "-") {
		negative = !negative
		cleaned = cleaned[1:]
	}

	match := numericRun.FindString(cleaned)
	if match == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"1/2/2006",
	"1-2-2006",
	"1/2/06",
	"2 January 2006",
}

// ParseDate parses a calendar date in the formats commonly printed on
// financial statements.
func ParseDate(raw string) (time.Time, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
