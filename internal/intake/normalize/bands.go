// Package normalize converts raw spoken values into canonical categorical
// bands. All functions are pure: the same input (including the supplied
// reference time) always produces the same output, independent of which
// extraction engine produced the raw value.
package normalize

// Banded pairs the original utterance with the band computed from it.
type Banded struct {
	Raw  string `json:"raw"`
	Band string `json:"band"`
}

// Sentinel band for out-of-domain or unparseable numeric input.
const BandPreferNotToSay = "prefer_not_to_say"

// Land value bands.
const (
	LandBandLt25k    = "lt_25k"
	LandBand25k50k   = "25k_50k"
	LandBand50k100k  = "50k_100k"
	LandBand100k200k = "100k_200k"
	LandBand200kPlus = "200k_plus"
)

// Credit score bands.
const (
	CreditBandLt580   = "lt_580"
	CreditBand580619  = "580_619"
	CreditBand620679  = "620_679"
	CreditBand680719  = "680_719"
	CreditBand720Plus = "720_plus"
)

// Plausible dollar range for self-reported land value. Anything outside is
// treated as "prefer not to say" rather than rejected.
const (
	landValueMin = 1_000
	landValueMax = 10_000_000
)

// Self-reported credit scores above 799 or below 300 are out of domain.
const (
	creditScoreMin = 300
	creditScoreMax = 799
)

// LandValue classifies a raw land value utterance into a dollar band.
func LandValue(raw string) Banded {
	v, ok := ParseAmount(raw)
	if !ok || v < landValueMin || v > landValueMax {
		return Banded{Raw: raw, Band: BandPreferNotToSay}
	}

	switch {
	case v < 25_000:
		return Banded{Raw: raw, Band: LandBandLt25k}
	case v < 50_000:
		return Banded{Raw: raw, Band: LandBand25k50k}
	case v < 100_000:
		return Banded{Raw: raw, Band: LandBand50k100k}
	case v < 200_000:
		return Banded{Raw: raw, Band: LandBand100k200k}
	default:
		return Banded{Raw: raw, Band: LandBand200kPlus}
	}
}

// CreditScore classifies a raw credit score utterance into a score band.
func CreditScore(raw string) Banded {
	v, ok := ParseAmount(raw)
	if !ok || v < creditScoreMin || v > creditScoreMax {
		return Banded{Raw: raw, Band: BandPreferNotToSay}
	}

	switch {
	case v < 580:
		return Banded{Raw: raw, Band: CreditBandLt580}
	case v < 620:
		return Banded{Raw: raw, Band: CreditBand580619}
	case v < 680:
		return Banded{Raw: raw, Band: CreditBand620679}
	case v < 720:
		return Banded{Raw: raw, Band: CreditBand680719}
	default:
		return Banded{Raw: raw, Band: CreditBand720Plus}
	}
}
