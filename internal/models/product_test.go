package models

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCurrency_IsValid(t *testing.T) {
	for _, c := range []Currency{CurrencyEUR, CurrencyUSD, CurrencyRUB} {
		if !c.IsValid() {
			t.Errorf("IsValid(%q) = false, want true", c)
		}
	}
	if Currency("GBP").IsValid() {
		t.Error("IsValid(GBP) = true, want false")
	}
	if Currency("").IsValid() {
		t.Error("IsValid(empty) = true, want false")
	}
}

func TestProduct_AvailableOn(t *testing.T) {
	to := date(2026, time.June, 30)

	tests := []struct {
		name  string
		from  time.Time
		to    *time.Time
		day   time.Time
		want  bool
	}{
		{"inside window", date(2026, time.June, 1), &to, date(2026, time.June, 15), true},
		{"on start boundary", date(2026, time.June, 1), &to, date(2026, time.June, 1), true},
		{"on end boundary", date(2026, time.June, 1), &to, date(2026, time.June, 30), true},
		{"before window", date(2026, time.June, 1), &to, date(2026, time.May, 31), false},
		{"after window", date(2026, time.June, 1), &to, date(2026, time.July, 1), false},
		{"open-ended far future", date(2026, time.June, 1), nil, date(2030, time.January, 1), true},
		{"open-ended before start", date(2026, time.June, 1), nil, date(2026, time.May, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{AvailableFrom: tt.from, AvailableTo: tt.to}
			if got := p.AvailableOn(tt.day); got != tt.want {
				t.Errorf("AvailableOn(%v) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestProduct_AvailableOn_IgnoresTimeOfDay(t *testing.T) {
	to := date(2026, time.June, 30)
	p := &Product{
		AvailableFrom: time.Date(2026, time.June, 1, 23, 59, 0, 0, time.UTC),
		AvailableTo:   &to,
	}
	// Same calendar day as available_from, earlier clock time
	if !p.AvailableOn(time.Date(2026, time.June, 1, 0, 1, 0, 0, time.UTC)) {
		t.Error("AvailableOn should compare calendar days, not instants")
	}
}

func TestProduct_FormatDisplayPrice(t *testing.T) {
	tests := []struct {
		currency Currency
		price    float64
		want     string
	}{
		{CurrencyEUR, 18.5, "€18.50"},
		{CurrencyUSD, 14.9, "$14.90"},
		{CurrencyRUB, 1200, "₽1200.00"},
		{Currency("XXX"), 9.99, "9.99"},
	}

	for _, tt := range tests {
		p := &Product{Currency: tt.currency, PricePerUnit: tt.price}
		if got := p.FormatDisplayPrice(); got != tt.want {
			t.Errorf("FormatDisplayPrice(%s, %v) = %q, want %q", tt.currency, tt.price, got, tt.want)
		}
	}
}

func TestProduct_ComputeDerived(t *testing.T) {
	p := &Product{
		Currency:      CurrencyEUR,
		PricePerUnit:  18.5,
		AvailableFrom: date(2026, time.June, 1),
	}
	p.ComputeDerived(date(2026, time.June, 15))

	if !p.IsAvailable {
		t.Error("IsAvailable = false, want true")
	}
	if p.DisplayPrice != "€18.50" {
		t.Errorf("DisplayPrice = %q, want €18.50", p.DisplayPrice)
	}
}
