package money

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"euro", "10.00", "EUR", "€10.00"},
		{"dollar", "19.99", "USD", "$19.99"},
		{"pound", "5.5", "GBP", "£5.50"},
		{"unknown currency", "12.00", "SEK", "12.00 SEK"},
		{"empty amount", "", "EUR", ""},
		{"unparseable amount", "abc", "EUR", "abc EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.amount, tt.currency)
			if got != tt.want {
				t.Errorf("Format(%q, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
			}
		})
	}
}

func TestSymbol(t *testing.T) {
	if got := Symbol("EUR"); got != "€" {
		t.Errorf("Symbol(EUR) = %q, want €", got)
	}
	if got := Symbol("XYZ"); got != "XYZ" {
		t.Errorf("Symbol(XYZ) = %q, want XYZ", got)
	}
}
