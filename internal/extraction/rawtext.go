package extraction

import (
	"regexp"
	"strings"
)

var (
	currencyValue  = regexp.MustCompile(`-?\$?[\d,]+\.\d{2}`)
	currencyAtLine = regexp.MustCompile(`^-?\$?[\d,]+\.\d{2}`)
)

// financialPatterns recover labeled amounts from free-form statement text.
// Ordered most-specific first so "Rental Income" is not consumed by the bare
// "Income" pattern.
var financialPatterns = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`(?i)rental\s+income[:\s]*\$?([\d,]+\.?\d*)`), "Rental Income"},
	{regexp.MustCompile(`(?i)total\s+income[:\s]*\$?([\d,]+\.?\d*)`), "Total Income"},
	{regexp.MustCompile(`(?i)\bincome[:\s]*\$?([\d,]+\.?\d*)`), "Income"},
	{regexp.MustCompile(`(?i)total\s+expenses?[:\s]*-?\$?([\d,]+\.?\d*)`), "Total Expenses"},
	{regexp.MustCompile(`(?i)\bexpenses?[:\s]*-?\$?([\d,]+\.?\d*)`), "Expenses"},
	{regexp.MustCompile(`(?i)net\s+cash\s+flow[:\s]*\$?([\d,]+\.?\d*)`), "Net Cash Flow"},
	{regexp.MustCompile(`(?i)maintenance[:\s]*-?\$?([\d,]+\.?\d*)`), "Maintenance"},
	{regexp.MustCompile(`(?i)\binsurance[:\s]*-?\$?([\d,]+\.?\d*)`), "Insurance"},
	{regexp.MustCompile(`(?i)property\s+tax[:\s]*-?\$?([\d,]+\.?\d*)`), "Property Tax"},
	{regexp.MustCompile(`(?i)utilit(?:y|ies)[:\s]*-?\$?([\d,]+\.?\d*)`), "Utilities"},
	{regexp.MustCompile(`(?i)property\s+management[:\s]*-?\$?([\d,]+\.?\d*)`), "Property Management"},
	{regexp.MustCompile(`(?i)\bmanagement[:\s]*-?\$?([\d,]+\.?\d*)`), "Management"},
	{regexp.MustCompile(`(?i)\brepair[:\s]*-?\$?([\d,]+\.?\d*)`), "Repair"},
}

// PairsFromText derives key/value pairs from raw OCR text when the
// collaborator returned no structured blocks. Line-oriented "Label: Value"
// and label-then-amount shapes are collected first, in document order, then
// the financial pattern table fills in anything the line scan missed.
func PairsFromText(rawText string) []KeyValue {
	if strings.TrimSpace(rawText) == "" {
		return nil
	}

	var pairs []KeyValue
	seen := make(map[string]bool)
	add := func(key, value string) {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			return
		}
		lower := strings.ToLower(key)
		if seen[lower] {
			return
		}
		seen[lower] = true
		pairs = append(pairs, KeyValue{Key: key, Value: value})
	}

	lines := strings.Split(rawText, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if idx := strings.Index(line, ":"); idx > 0 {
			label, value := line[:idx], line[idx+1:]
			if currencyValue.MatchString(value) {
				add(label, strings.TrimSpace(value))
			}
			continue
		}
		// A bare label followed by an amount on the next line.
		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if currencyAtLine.MatchString(next) && !currencyAtLine.MatchString(line) {
				add(line, next)
			}
		}
	}

	for _, p := range financialPatterns {
		match := p.re.FindStringSubmatch(rawText)
		if match == nil {
			continue
		}
		add(p.label, match[1])
	}

	return pairs
}
