package normalize

import "strings"

// Contact time-of-day bands.
const (
	ContactBandMorning        = "morning"
	ContactBandAfternoon      = "afternoon"
	ContactBandEvening        = "evening"
	ContactBandWeekdayMorning = "weekday_morning"
	ContactBandWeekdayEvening = "weekday_evening"
	ContactBandWeekend        = "weekend"
)

var weekendPhrases = []string{"weekend", "saturday", "sunday"}

var weekdayPhrases = []string{"weekday", "week day", "during the week", "work day", "workday"}

var morningPhrases = []string{"morning", "before noon", "early"}

var eveningPhrases = []string{"evening", "night", "after work", "after dinner", "late"}

var afternoonPhrases = []string{"afternoon", "midday", "mid day", "noon", "lunch"}

// ContactTime classifies a preferred-contact-time utterance. Weekday and
// weekend qualifiers combine with morning/evening qualifiers. Unclassifiable
// input defaults to morning: the field is required but low-stakes, so a wrong
// default beats a failed turn.
func ContactTime(raw string) Banded {
	s := strings.ToLower(strings.TrimSpace(raw))
	tokens := strings.Fields(s)

	weekend := containsAny(s, weekendPhrases)
	weekday := containsAny(s, weekdayPhrases)
	morning := containsAny(s, morningPhrases) || hasToken(tokens, "am")
	evening := containsAny(s, eveningPhrases) || hasToken(tokens, "pm")
	afternoon := containsAny(s, afternoonPhrases)

	switch {
	case weekend:
		return Banded{Raw: raw, Band: ContactBandWeekend}
	case weekday && evening:
		return Banded{Raw: raw, Band: ContactBandWeekdayEvening}
	case weekday && afternoon && !morning:
		// No weekday-afternoon band exists; the time of day wins.
		return Banded{Raw: raw, Band: ContactBandAfternoon}
	case weekday:
		return Banded{Raw: raw, Band: ContactBandWeekdayMorning}
	case evening:
		return Banded{Raw: raw, Band: ContactBandEvening}
	case afternoon:
		return Banded{Raw: raw, Band: ContactBandAfternoon}
	default:
		return Banded{Raw: raw, Band: ContactBandMorning}
	}
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
