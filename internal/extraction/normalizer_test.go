package extraction

import (
	"testing"

	"github.com/shopspring/decimal"

	"property-backend/internal/schema"
)

func TestNormalizeMonthlyStatement(t *testing.T) {
	pairs := []KeyValue{
		{Key: "Rental Income", Value: "$2,500.00"},
		{Key: "Maintenance", Value: "$150.00"},
	}
	res := Normalize(schema.TypeMonthlyStatement, pairs, "")

	if res.Status != StatusSuccess {
		t.Fatalf("status = %q, want success", res.Status)
	}
	if got := res.Amount(schema.FieldIncome); !got.Equal(decimal.RequireFromString("2500.00")) {
		t.Fatalf("income = %s, want 2500.00", got)
	}
	if got := res.Amount(schema.FieldExpenses); !got.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("expenses = %s, want 150.00", got)
	}
}

func TestNormalizeAliasResolution(t *testing.T) {
	for _, key := range []string{"Income", "income", "Total Income"} {
		res := Normalize(schema.TypeMonthlyStatement, []KeyValue{{Key: key, Value: "$100.00"}}, "")
		if _, ok := res.Fields[schema.FieldIncome]; !ok {
			t.Fatalf("key %q did not resolve to canonical income: %+v", key, res.Fields)
		}
	}
}

func TestNormalizeFirstDuplicateWins(t *testing.T) {
	pairs := []KeyValue{
		{Key: "Rental Income", Value: "$1,000.00"},
		{Key: "Total Income", Value: "$9,999.00"},
	}
	res := Normalize(schema.TypeMonthlyStatement, pairs, "")
	if got := res.Amount(schema.FieldIncome); !got.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("income = %s, want first-encountered 1000", got)
	}
}

func TestNormalizeUnparseableValueKept(t *testing.T) {
	pairs := []KeyValue{
		{Key: "Income", Value: "N/A"},
		{Key: "Expenses", Value: "$50.00"},
	}
	res := Normalize(schema.TypeMonthlyStatement, pairs, "")

	v, ok := res.Fields[schema.FieldIncome]
	if !ok {
		t.Fatal("unparseable income field dropped, want present-but-unparseable")
	}
	if v.Parsed || v.Raw != "N/A" {
		t.Fatalf("income value = %+v, want unparsed with raw preserved", v)
	}
	if got := res.Amount(schema.FieldIncome); !got.IsZero() {
		t.Fatalf("unparseable income contributes %s, want 0", got)
	}
	if res.Status != StatusSuccess {
		t.Fatalf("status = %q, want success (expenses parsed)", res.Status)
	}
}

func TestNormalizeUnmatchedKeysPreserved(t *testing.T) {
	pairs := []KeyValue{
		{Key: "Tenant Name", Value: "J. Fawlty"},
		{Key: "Income", Value: "$100.00"},
	}
	res := Normalize(schema.TypeMonthlyStatement, pairs, "")
	if res.Unmatched["Tenant Name"] != "J. Fawlty" {
		t.Fatalf("unmatched = %v, want Tenant Name preserved verbatim", res.Unmatched)
	}
}

func TestNormalizeNoFieldsFound(t *testing.T) {
	res := Normalize(schema.TypeMonthlyStatement, nil, "")
	if res.Status != StatusNoFieldsFound {
		t.Fatalf("status = %q, want no_fields_found", res.Status)
	}
}

func TestNormalizeRawTextOnlyIsSuccess(t *testing.T) {
	res := Normalize(schema.TypeMonthlyStatement, nil, "an unstructured page of text")
	if res.Status != StatusSuccess {
		t.Fatalf("status = %q, want success when raw text exists", res.Status)
	}
}

func TestNormalizeDerivesPairsFromRawText(t *testing.T) {
	raw := "Monthly Statement\nRental Income: $2,500.00\nMaintenance: $150.00\nStatement Date: January 31, 2025"
	res := Normalize(schema.TypeMonthlyStatement, nil, raw)

	if got := res.Amount(schema.FieldIncome); !got.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("income from raw text = %s, want 2500", got)
	}
	if got := res.Amount(schema.FieldExpenses); !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expenses from raw text = %s, want 150", got)
	}
}

func TestNormalizeMortgageStatement(t *testing.T) {
	pairs := []KeyValue{
		{Key: "Principal", Value: "$820.00"},
		{Key: "Interest", Value: "$410.50"},
		{Key: "Escrow", Value: "$120.00"},
		{Key: "Total Payment", Value: "$1,350.50"},
		{Key: "Due Date", Value: "02/01/2025"},
	}
	res := Normalize(schema.TypeMortgageStatement, pairs, "")

	if got := res.Amount(schema.FieldTotalPayment); !got.Equal(decimal.RequireFromString("1350.50")) {
		t.Fatalf("total_payment = %s, want 1350.50", got)
	}
	due, ok := res.Fields[schema.FieldDueDate]
	if !ok || !due.Parsed || due.Date != "2025-02-01" {
		t.Fatalf("due_date = %+v, want parsed 2025-02-01", due)
	}
	// Mortgage numbers must not leak into the cash-flow fields.
	if got := res.Amount(schema.FieldIncome); !got.IsZero() {
		t.Fatalf("income = %s, want 0 on mortgage statement", got)
	}
}

func TestFailurePassthrough(t *testing.T) {
	res := Failure(StatusUnavailable, "credentials-missing", "OCR credentials are not configured", "")
	if res.Status != StatusUnavailable || res.ErrorKind != "credentials-missing" {
		t.Fatalf("failure result = %+v", res)
	}
	if len(res.Fields) != 0 {
		t.Fatalf("failure result carries fields: %v", res.Fields)
	}
}
