package schema

import "testing"

func TestParseDocumentType(t *testing.T) {
	cases := []struct {
		raw  string
		want DocumentType
		ok   bool
	}{
		{"monthly_statement", TypeMonthlyStatement, true},
		{" Property_Tax ", TypePropertyTax, true},
		{"MORTGAGE_STATEMENT", TypeMortgageStatement, true},
		{"bank_statement", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseDocumentType(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseDocumentType(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"Rental Income:":     "rental income",
		"  TOTAL  EXPENSES ": "total expenses",
		"Policy #":           "policy",
		"Due-Date":           "due date",
		"$Amount":            "amount",
	}
	for raw, want := range cases {
		if got := NormalizeKey(raw); got != want {
			t.Fatalf("NormalizeKey(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestMatchIncomeAliases(t *testing.T) {
	for _, raw := range []string{"Income", "income", "Total Income", "Rental Income:", "Monthly Rental Income"} {
		f, ok := Match(TypeMonthlyStatement, raw)
		if !ok || f.Name != FieldIncome {
			t.Fatalf("Match(monthly_statement, %q) = (%q, %v), want income", raw, f.Name, ok)
		}
	}
}

func TestMatchRequiresWordBoundaries(t *testing.T) {
	// "Current Value" must not resolve via the "rent" alias.
	if f, ok := Match(TypeMonthlyStatement, "Current Value"); ok {
		t.Fatalf("Match(monthly_statement, Current Value) resolved to %q, want no match", f.Name)
	}
}

func TestMatchTypeSpecificPriority(t *testing.T) {
	// On a tax document the "Property Tax" label is the tax amount itself.
	f, ok := Match(TypePropertyTax, "Property Tax")
	if !ok || f.Name != FieldTaxAmount {
		t.Fatalf("Match(property_tax, Property Tax) = (%q, %v), want tax_amount", f.Name, ok)
	}
	// On a monthly statement it is an individual expense line.
	f, ok = Match(TypeMonthlyStatement, "Property Tax")
	if !ok || f.Name != FieldExpenses {
		t.Fatalf("Match(monthly_statement, Property Tax) = (%q, %v), want expenses", f.Name, ok)
	}
}

func TestMatchMortgageFields(t *testing.T) {
	cases := map[string]string{
		"Principal":      FieldPrincipal,
		"Interest Paid":  FieldInterest,
		"Escrow":         FieldEscrow,
		"Total Payment":  FieldTotalPayment,
		"Amount Due":     FieldTotalPayment,
		"Due Date":       FieldDueDate,
		"Statement Date": FieldStatementDate,
	}
	for raw, want := range cases {
		f, ok := Match(TypeMortgageStatement, raw)
		if !ok || f.Name != want {
			t.Fatalf("Match(mortgage_statement, %q) = (%q, %v), want %q", raw, f.Name, ok, want)
		}
	}
}

func TestMatchUnknownKey(t *testing.T) {
	if f, ok := Match(TypeMonthlyStatement, "Tenant Name"); ok {
		t.Fatalf("Match(monthly_statement, Tenant Name) resolved to %q, want no match", f.Name)
	}
}

func TestFieldsForOrderIsStable(t *testing.T) {
	fields := FieldsFor(TypePropertyInsurance)
	if len(fields) == 0 {
		t.Fatal("no fields for property_insurance")
	}
	if fields[0].Name != FieldPremiumAmount {
		t.Fatalf("first field = %q, want premium_amount first", fields[0].Name)
	}
}
