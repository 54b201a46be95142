package normalize

import (
	"strconv"
	"strings"
)

// Spoken-number vocabulary. Covers numerals, "$40,000", "40k", compound word
// forms ("forty thousand"), and the two-word hundreds shorthand callers use
// for credit scores ("six fifty" = 650).

var unitWords = map[string]int64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
}

var tensWords = map[string]int64{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var scaleWords = map[string]int64{
	"hundred":  100,
	"thousand": 1000,
	"grand":    1000,
	"million":  1000000,
}

// fillerWords are tokens dropped before parsing. They carry no numeric
// meaning in utterances like "about forty thousand dollars".
var fillerWords = map[string]bool{
	"about": true, "around": true, "roughly": true, "approximately": true,
	"maybe": true, "like": true, "say": true, "dollars": true, "dollar": true,
	"bucks": true, "a": true, "an": true, "the": true, "or": true, "so": true,
	"its": true, "it's": true, "is": true,
}

// ParseAmount parses a spoken or written number into an integer value.
// Returns false when the input contains tokens outside the number grammar.
func ParseAmount(raw string) (int64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("$", "", ",", "", "-", " ").Replace(s)

	tokens := make([]string, 0, 4)
	for _, tok := range strings.Fields(s) {
		if !fillerWords[tok] {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return 0, false
	}

	if len(tokens) == 1 {
		if v, ok := parseNumericToken(tokens[0]); ok {
			return v, true
		}
	}

	// Two-word hundreds shorthand: a leading single digit followed by a
	// tens or teens word reads as digit*100 + rest ("six fifty", "seven fifteen").
	if len(tokens) == 2 {
		if lead, ok := unitWords[tokens[0]]; ok && lead >= 1 && lead <= 9 {
			if tens, ok := tensWords[tokens[1]]; ok {
				return lead*100 + tens, true
			}
			if teen, ok := unitWords[tokens[1]]; ok && teen >= 10 {
				return lead*100 + teen, true
			}
		}
	}

	var total, current int64
	seen := false
	for _, tok := range tokens {
		switch {
		case unitWords[tok] != 0 || tok == "zero":
			current += unitWords[tok]
			seen = true
		case tensWords[tok] != 0:
			current += tensWords[tok]
			seen = true
		case tok == "hundred":
			if current == 0 {
				current = 1
			}
			current *= 100
			seen = true
		case scaleWords[tok] >= 1000:
			if current == 0 {
				current = 1
			}
			total += current * scaleWords[tok]
			current = 0
			seen = true
		default:
			if v, ok := parseNumericToken(tok); ok {
				current += v
				seen = true
				continue
			}
			return 0, false
		}
	}

	if !seen {
		return 0, false
	}
	return total + current, true
}

func parseNumericToken(tok string) (int64, bool) {
	mult := int64(1)
	if strings.HasSuffix(tok, "k") {
		tok = strings.TrimSuffix(tok, "k")
		mult = 1000
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, false
	}
	return v * mult, true
}
