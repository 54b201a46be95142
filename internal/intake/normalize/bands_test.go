package normalize

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"40000", 40000, true},
		{"$40,000", 40000, true},
		{"40k", 40000, true},
		{"forty thousand", 40000, true},
		{"about forty thousand dollars", 40000, true},
		{"forty grand", 40000, true},
		{"a hundred thousand", 100000, true},
		{"two hundred fifty thousand", 250000, true},
		{"one point five", 0, false},
		{"six fifty", 650, true},
		{"seven fifteen", 715, true},
		{"six hundred fifty", 650, true},
		{"1.5 million", 0, false},
		{"two million", 2000000, true},
		{"720", 720, true},
		{"no idea", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAmount(tt.in)
		if ok != tt.ok {
			t.Fatalf("ParseAmount(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
		if ok && got != tt.want {
			t.Fatalf("ParseAmount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCreditScoreBands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"550", CreditBandLt580},
		{"580", CreditBand580619},
		{"619", CreditBand580619},
		{"620", CreditBand620679},
		{"650", CreditBand620679},
		{"six fifty", CreditBand620679},
		{"680", CreditBand680719},
		{"720", CreditBand720Plus},
		{"799", CreditBand720Plus},
		{"800", BandPreferNotToSay},
		{"250", BandPreferNotToSay},
		{"rather not say", BandPreferNotToSay},
		{"", BandPreferNotToSay},
	}
	for _, tt := range tests {
		got := CreditScore(tt.in)
		if got.Band != tt.want {
			t.Fatalf("CreditScore(%q).Band = %q, want %q", tt.in, got.Band, tt.want)
		}
		if got.Raw != tt.in {
			t.Fatalf("CreditScore(%q).Raw = %q, want input preserved", tt.in, got.Raw)
		}
	}
}

func TestLandValueBands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10000", LandBandLt25k},
		{"24999", LandBandLt25k},
		{"25000", LandBand25k50k},
		{"forty thousand", LandBand25k50k},
		{"50k", LandBand50k100k},
		{"$150,000", LandBand100k200k},
		{"200000", LandBand200kPlus},
		{"two million", LandBand200kPlus},
		{"500", BandPreferNotToSay},
		{"fifty million", BandPreferNotToSay},
		{"not sure", BandPreferNotToSay},
	}
	for _, tt := range tests {
		got := LandValue(tt.in)
		if got.Band != tt.want {
			t.Fatalf("LandValue(%q).Band = %q, want %q", tt.in, got.Band, tt.want)
		}
	}
}
