// Package cashflow recomputes a property's income and expense totals
// from its full document history.
package cashflow

import (
	"github.com/shopspring/decimal"

	"property-backend/internal/extraction"
	"property-backend/internal/properties"
	"property-backend/internal/schema"
)

// Totals sums rental income and expenses across all successfully
// extracted documents. The pass is a pure function of the document set,
// so recomputing after any change keeps the aggregates consistent with
// history. Documents without parsed amounts contribute zero.
func Totals(docs []properties.Document) (income, expenses decimal.Decimal) {
	for _, d := range docs {
		if d.Extraction.Status != extraction.StatusSuccess {
			continue
		}
		income = income.Add(d.Extraction.Amount(schema.FieldIncome))
		expenses = expenses.Add(d.Extraction.Amount(schema.FieldExpenses))
	}
	return income, expenses
}

// Apply recomputes a property's aggregates in place from its documents.
func Apply(p *properties.Property) {
	p.RentalIncome, p.Expenses = Totals(p.Documents)
}
