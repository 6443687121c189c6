package cashflow

import (
	"testing"

	"github.com/shopspring/decimal"

	"property-backend/internal/extraction"
	"property-backend/internal/properties"
	"property-backend/internal/schema"
)

func moneyDoc(id string, income, expenses string) properties.Document {
	fields := map[string]extraction.Value{}
	if income != "" {
		amount := decimal.RequireFromString(income)
		fields[schema.FieldIncome] = extraction.Value{Kind: schema.KindMoney, Amount: &amount, Raw: income, Parsed: true}
	}
	if expenses != "" {
		amount := decimal.RequireFromString(expenses)
		fields[schema.FieldExpenses] = extraction.Value{Kind: schema.KindMoney, Amount: &amount, Raw: expenses, Parsed: true}
	}
	return properties.Document{
		ID:   id,
		Type: schema.TypeMonthlyStatement,
		Extraction: extraction.Result{
			Status: extraction.StatusSuccess,
			Fields: fields,
		},
	}
}

func TestTotalsSumsAcrossDocuments(t *testing.T) {
	docs := []properties.Document{
		moneyDoc("doc-1", "2500.00", "150.00"),
		moneyDoc("doc-2", "1000", ""),
		moneyDoc("doc-3", "", "75.25"),
	}

	income, expenses := Totals(docs)
	if !income.Equal(decimal.RequireFromString("3500.00")) {
		t.Fatalf("income = %s, want 3500.00", income)
	}
	if !expenses.Equal(decimal.RequireFromString("225.25")) {
		t.Fatalf("expenses = %s, want 225.25", expenses)
	}
}

func TestTotalsSkipsNonSuccessDocuments(t *testing.T) {
	failed := moneyDoc("doc-failed", "9999", "9999")
	failed.Extraction.Status = extraction.StatusFailed
	unavailable := moneyDoc("doc-unavailable", "500", "")
	unavailable.Extraction.Status = extraction.StatusUnavailable

	docs := []properties.Document{
		moneyDoc("doc-1", "2500.00", "150.00"),
		failed,
		unavailable,
	}

	income, expenses := Totals(docs)
	if !income.Equal(decimal.RequireFromString("2500.00")) {
		t.Fatalf("income = %s, want 2500.00", income)
	}
	if !expenses.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("expenses = %s, want 150.00", expenses)
	}
}

func TestTotalsUnparsedFieldContributesZero(t *testing.T) {
	doc := properties.Document{
		ID:   "doc-1",
		Type: schema.TypeMonthlyStatement,
		Extraction: extraction.Result{
			Status: extraction.StatusSuccess,
			Fields: map[string]extraction.Value{
				schema.FieldIncome: {Kind: schema.KindMoney, Raw: "N/A", Parsed: false},
			},
		},
	}

	income, expenses := Totals([]properties.Document{doc})
	if !income.IsZero() || !expenses.IsZero() {
		t.Fatalf("totals = %s / %s, want zero", income, expenses)
	}
}

func TestTotalsEmptyCollection(t *testing.T) {
	income, expenses := Totals(nil)
	if !income.IsZero() || !expenses.IsZero() {
		t.Fatalf("totals = %s / %s, want zero", income, expenses)
	}
}

func TestTotalsIdempotent(t *testing.T) {
	docs := []properties.Document{
		moneyDoc("doc-1", "2500.00", "150.00"),
		moneyDoc("doc-2", "1000", "50"),
	}

	income1, expenses1 := Totals(docs)
	income2, expenses2 := Totals(docs)
	if !income1.Equal(income2) || !expenses1.Equal(expenses2) {
		t.Fatalf("recompute changed totals: %s/%s vs %s/%s", income1, expenses1, income2, expenses2)
	}
}

func TestApplySetsAggregatesInPlace(t *testing.T) {
	p := properties.Property{
		RentalIncome: decimal.NewFromInt(999),
		Expenses:     decimal.NewFromInt(999),
		Documents:    []properties.Document{moneyDoc("doc-1", "2500.00", "150.00")},
	}
	Apply(&p)
	if !p.RentalIncome.Equal(decimal.RequireFromString("2500.00")) {
		t.Fatalf("rental income = %s", p.RentalIncome)
	}
	if !p.Expenses.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("expenses = %s", p.Expenses)
	}
}
