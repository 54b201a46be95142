package normalize

import (
	"regexp"
	"strings"
	"time"
)

// Timeline bands.
const (
	TimelineBand03      = "0_3_months"
	TimelineBand36      = "3_6_months"
	TimelineBand612     = "6_12_months"
	TimelineBand12Plus  = "12_plus_months"
	TimelineBandUnknown = "unknown"
)

const monthsOutUnknown = -1

// TimelineResult is the outcome of resolving a purchase-timeline utterance.
// MonthsOut is -1 when the band was not derived from a month count.
// Ambiguous marks phrasing that cannot be resolved without guessing; the
// caller-facing layer is expected to ask a clarifying question instead of
// storing a band.
type TimelineResult struct {
	Raw       string `json:"raw"`
	Band      string `json:"band"`
	MonthsOut int    `json:"monthsOut"`
	Ambiguous bool   `json:"isAmbiguous"`
}

var canonicalTimelineBands = map[string]string{
	TimelineBand03:     TimelineBand03,
	TimelineBand36:     TimelineBand36,
	TimelineBand612:    TimelineBand612,
	TimelineBand12Plus: TimelineBand12Plus,
	"0-3 months":       TimelineBand03,
	"0 to 3 months":    TimelineBand03,
	"3-6 months":       TimelineBand36,
	"3 to 6 months":    TimelineBand36,
	"6-12 months":      TimelineBand612,
	"6 to 12 months":   TimelineBand612,
	"12+ months":       TimelineBand12Plus,
	"over a year":      TimelineBand12Plus,
}

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var monthCountRe = regexp.MustCompile(`(\d+)\s*month`)

var immediatePhrases = []string{
	"right away", "asap", "as soon as possible", "immediately", "right now",
}

// Timeline resolves free-text purchase timing into a canonical band relative
// to the supplied reference time.
//
// Month names need calendar arithmetic: a month strictly later in the current
// year means that gap, with "next" pushing it a year out; the current month
// means 0 unless "next" is present (then 12); an already-passed month wraps
// to the following year. A passed
// month pinned to "this year" cannot be satisfied, so it is flagged ambiguous
// instead of being guessed at.
func Timeline(raw string, now time.Time) TimelineResult {
	s := strings.ToLower(strings.TrimSpace(raw))
	res := TimelineResult{Raw: raw, Band: TimelineBandUnknown, MonthsOut: monthsOutUnknown}
	if s == "" {
		return res
	}

	if band, ok := canonicalTimelineBands[s]; ok {
		res.Band = band
		return res
	}

	for _, phrase := range immediatePhrases {
		if strings.Contains(s, phrase) {
			return withMonths(res, 0)
		}
	}
	if s == "now" || s == "soon" {
		return withMonths(res, 0)
	}

	tokens := strings.Fields(strings.NewReplacer(",", " ", ".", " ").Replace(s))
	hasNext := hasToken(tokens, "next")

	if strings.Contains(s, "next month") {
		return withMonths(res, 1)
	}
	if strings.Contains(s, "end of year") || strings.Contains(s, "end of the year") {
		return withMonths(res, int(time.December-now.Month()))
	}

	// Month names before generic counts so "next june" is not read as a count.
	for _, tok := range tokens {
		named, ok := monthNames[tok]
		if !ok {
			continue
		}
		cur := now.Month()
		switch {
		case named > cur:
			// "next June" pins the following year's June, not the upcoming one.
			if hasNext {
				return withMonths(res, int(named-cur)+12)
			}
			return withMonths(res, int(named-cur))
		case named == cur:
			if hasNext {
				return withMonths(res, 12)
			}
			return withMonths(res, 0)
		default:
			if strings.Contains(s, "this year") {
				res.Ambiguous = true
				return res
			}
			return withMonths(res, int(named)+12-int(cur))
		}
	}

	if m := monthCountRe.FindStringSubmatch(s); m != nil {
		if v, ok := ParseAmount(m[1]); ok {
			return withMonths(res, int(v))
		}
	}
	if idx := indexOfToken(tokens, "month", "months"); idx > 0 {
		if v, ok := ParseAmount(strings.Join(tokens[:idx], " ")); ok {
			return withMonths(res, int(v))
		}
	}

	if hasToken(tokens, "year", "years") {
		// "two years" scales; "a year", "next year", "a year or so" all read as 12.
		if v, ok := ParseAmount(strings.Join(tokensBefore(tokens, "year", "years"), " ")); ok && v >= 1 {
			return withMonths(res, int(v)*12)
		}
		return withMonths(res, 12)
	}

	return res
}

func withMonths(res TimelineResult, months int) TimelineResult {
	res.MonthsOut = months
	switch {
	case months <= 3:
		res.Band = TimelineBand03
	case months <= 6:
		res.Band = TimelineBand36
	case months < 12:
		res.Band = TimelineBand612
	default:
		res.Band = TimelineBand12Plus
	}
	return res
}

func hasToken(tokens []string, want ...string) bool {
	for _, tok := range tokens {
		for _, w := range want {
			if tok == w {
				return true
			}
		}
	}
	return false
}

func indexOfToken(tokens []string, want ...string) int {
	for i, tok := range tokens {
		for _, w := range want {
			if tok == w {
				return i
			}
		}
	}
	return -1
}

func tokensBefore(tokens []string, stops ...string) []string {
	if idx := indexOfToken(tokens, stops...); idx >= 0 {
		return tokens[:idx]
	}
	return tokens
}
