package schema

import "strings"

// DocumentType enumerates the document categories a caller may declare on upload.
type DocumentType string

const (
	TypePropertyDocument  DocumentType = "property_document"
	TypeMonthlyStatement  DocumentType = "monthly_statement"
	TypePropertyInsurance DocumentType = "property_insurance"
	TypePropertyTax       DocumentType = "property_tax"
	TypeMortgageStatement DocumentType = "mortgage_statement"
)

// ParseDocumentType validates a raw document type string.
func ParseDocumentType(raw string) (DocumentType, bool) {
	t := DocumentType(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case TypePropertyDocument, TypeMonthlyStatement, TypePropertyInsurance, TypePropertyTax, TypeMortgageStatement:
		return t, true
	}
	return "", false
}

// Kind classifies how a canonical field's raw value is coerced.
type Kind string

const (
	KindMoney Kind = "money"
	KindDate  Kind = "date"
	KindText  Kind = "text"
)

// Canonical field names. Aggregation only ever reads FieldIncome and
// FieldExpenses; the rest are typed metadata.
const (
	FieldIncome          = "income"
	FieldExpenses        = "expenses"
	FieldPrincipal       = "principal"
	FieldInterest        = "interest"
	FieldEscrow          = "escrow"
	FieldTotalPayment    = "total_payment"
	FieldTaxAmount       = "tax_amount"
	FieldAssessmentValue = "assessment_value"
	FieldPremiumAmount   = "premium_amount"
	FieldCoverageAmount  = "coverage_amount"
	FieldPolicyNumber    = "policy_number"
	FieldDueDate         = "due_date"
	FieldExpirationDate  = "expiration_date"
	FieldStatementDate   = "statement_date"
)

// Field describes one canonical field: its coercion kind and the raw label
// variants it is recognized under. Aliases are stored normalized.
type Field struct {
	Name    string
	Kind    Kind
	Aliases []string
}

// Alias vocabularies largely mirror the label variants observed in scanned
// statements: income labels, individual expense line items, and the
// type-specific labels of insurance, tax and mortgage documents.
var (
	incomeField = Field{Name: FieldIncome, Kind: KindMoney, Aliases: []string{
		"income", "rental income", "total income", "revenue", "rental revenue",
		"monthly income", "rent", "gross income",
	}}
	expensesField = Field{Name: FieldExpenses, Kind: KindMoney, Aliases: []string{
		"total expenses", "expenses", "total expense", "expense", "costs",
		"maintenance", "insurance", "property tax", "utilities", "utility",
		"property management", "management", "roof repair", "plumbing repair",
		"hvac service", "repair", "service", "cleaning", "lawn", "snow",
		"trash", "water", "electric", "gas", "sewer", "advertising", "legal",
		"accounting", "tax",
	}}
	statementDateField = Field{Name: FieldStatementDate, Kind: KindDate, Aliases: []string{
		"statement date", "statement period", "date",
	}}

	premiumField = Field{Name: FieldPremiumAmount, Kind: KindMoney, Aliases: []string{
		"premium", "annual premium", "premium amount", "total premium",
	}}
	coverageField = Field{Name: FieldCoverageAmount, Kind: KindMoney, Aliases: []string{
		"coverage", "coverage amount", "dwelling coverage", "coverage limit",
	}}
	policyNumberField = Field{Name: FieldPolicyNumber, Kind: KindText, Aliases: []string{
		"policy number", "policy no", "policy",
	}}
	expirationDateField = Field{Name: FieldExpirationDate, Kind: KindDate, Aliases: []string{
		"expiration date", "expiry date", "expires", "renewal date", "policy period end",
	}}

	taxAmountField = Field{Name: FieldTaxAmount, Kind: KindMoney, Aliases: []string{
		"tax amount", "total tax", "property tax", "tax due", "total amount due", "amount due",
	}}
	assessmentField = Field{Name: FieldAssessmentValue, Kind: KindMoney, Aliases: []string{
		"assessed value", "assessment value", "assessment", "total assessed value",
	}}
	dueDateField = Field{Name: FieldDueDate, Kind: KindDate, Aliases: []string{
		"due date", "payment due date", "due",
	}}

	principalField = Field{Name: FieldPrincipal, Kind: KindMoney, Aliases: []string{
		"principal", "principal balance", "outstanding principal", "principal amount", "principal paid",
	}}
	interestField = Field{Name: FieldInterest, Kind: KindMoney, Aliases: []string{
		"interest", "interest amount", "interest paid",
	}}
	escrowField = Field{Name: FieldEscrow, Kind: KindMoney, Aliases: []string{
		"escrow", "escrow amount", "escrow balance", "escrow payment",
	}}
	totalPaymentField = Field{Name: FieldTotalPayment, Kind: KindMoney, Aliases: []string{
		"total payment", "payment amount", "monthly payment", "total amount due", "amount due",
	}}
)

// fieldsByType holds the ordered canonical field set per document type.
// Order is the classification priority: a raw key resolves to the first
// field whose alias list matches, so type-specific fields come before the
// generic income/expenses pair (a "Property Tax" label on a property_tax
// document is the tax amount, not a generic expense line).
var fieldsByType = map[DocumentType][]Field{
	TypePropertyDocument: {incomeField, expensesField, statementDateField},
	TypeMonthlyStatement: {incomeField, expensesField, statementDateField},
	TypePropertyInsurance: {
		premiumField, coverageField, policyNumberField, expirationDateField,
		incomeField, expensesField, statementDateField,
	},
	TypePropertyTax: {
		taxAmountField, assessmentField, dueDateField,
		incomeField, expensesField, statementDateField,
	},
	TypeMortgageStatement: {
		principalField, interestField, escrowField, totalPaymentField, dueDateField,
		incomeField, expensesField, statementDateField,
	},
}

// FieldsFor returns the ordered canonical fields for a document type.
func FieldsFor(t DocumentType) []Field {
	return fieldsByType[t]
}

// Lookup returns the canonical field kinds for a field name regardless of
// document type, or false if the name is not canonical.
func Lookup(name string) (Field, bool) {
	for _, fields := range fieldsByType {
		for _, f := range fields {
			if f.Name == name {
				return f, true
			}
		}
	}
	return Field{}, false
}

// Match resolves a raw key to its canonical field for the document type.
// Matching is case-insensitive and whitespace/punctuation-normalized; an
// exact normalized alias wins first, then a whole-word containment match
// (so "Monthly Rental Income" still resolves to income, while "Current
// Value" does not trip over the "rent" alias).
func Match(t DocumentType, rawKey string) (Field, bool) {
	key := NormalizeKey(rawKey)
	if key == "" {
		return Field{}, false
	}
	fields := fieldsByType[t]
	for _, f := range fields {
		for _, alias := range f.Aliases {
			if key == alias {
				return f, true
			}
		}
	}
	padded := " " + key + " "
	for _, f := range fields {
		for _, alias := range f.Aliases {
			if strings.Contains(padded, " "+alias+" ") {
				return f, true
			}
		}
	}
	return Field{}, false
}

// NormalizeKey lowercases a raw label, maps punctuation to spaces and
// collapses runs of whitespace.
func NormalizeKey(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	lastSpace := true
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}
