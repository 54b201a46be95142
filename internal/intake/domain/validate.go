package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"prequal_backend/internal/intake/normalize"
	"prequal_backend/platform/phone"
	"prequal_backend/platform/validator"
)

// canonicalize validates a raw utterance for the field and returns the value
// to store plus, for banded fields, the raw utterance to keep alongside it.
// Malformed input is rejected here and never reaches the session.
func canonicalize(f Field, raw string, now time.Time) (value, storedRaw string, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", fmt.Errorf("%w: empty %s", ErrInvalidValue, f)
	}

	switch f {
	case FieldConsent:
		return canonicalConsent(trimmed)

	case FieldFirstName, FieldLastName:
		if len(trimmed) > 100 {
			return "", "", fmt.Errorf("%w: %s too long", ErrInvalidValue, f)
		}
		return trimmed, "", nil

	case FieldPhone:
		normalized, ok := phone.Valid(trimmed)
		if !ok {
			return "", "", fmt.Errorf("%w: phone %q", ErrInvalidValue, trimmed)
		}
		return normalized, "", nil

	case FieldEmail:
		lowered := strings.ToLower(trimmed)
		if err := validator.Validate.Var(lowered, "email"); err != nil {
			return "", "", fmt.Errorf("%w: email %q", ErrInvalidValue, trimmed)
		}
		return lowered, "", nil

	case FieldContactMethod:
		return canonicalEnum(f, trimmed, contactMethods)

	case FieldState:
		code := strings.ToUpper(trimmed)
		if !usStates[code] {
			return "", "", fmt.Errorf("%w: state %q", ErrInvalidValue, trimmed)
		}
		return code, "", nil

	case FieldZip:
		if err := validator.Validate.Var(trimmed, "uszip"); err != nil {
			return "", "", fmt.Errorf("%w: zip %q", ErrInvalidValue, trimmed)
		}
		return trimmed, "", nil

	case FieldLandStatus:
		return canonicalEnum(f, trimmed, landStatuses)

	case FieldLandValue:
		banded := normalize.LandValue(trimmed)
		return banded.Band, banded.Raw, nil

	case FieldHomeType:
		return canonicalEnum(f, trimmed, homeTypes)

	case FieldBedrooms:
		n, ok := normalize.ParseAmount(trimmed)
		if !ok || n < 1 || n > 10 {
			return "", "", fmt.Errorf("%w: bedrooms %q", ErrInvalidValue, trimmed)
		}
		return strconv.FormatInt(n, 10), "", nil

	case FieldTimeline:
		res := normalize.Timeline(trimmed, now)
		if res.Ambiguous {
			return "", "", ErrAmbiguousTimeline
		}
		return res.Band, res.Raw, nil

	case FieldCreditRange:
		banded := normalize.CreditScore(trimmed)
		return banded.Band, banded.Raw, nil

	case FieldBudgetRange:
		return canonicalEnum(f, trimmed, budgetRanges)

	case FieldDownPayment:
		return canonicalEnum(f, trimmed, downPayments)

	case FieldContactTime:
		banded := normalize.ContactTime(trimmed)
		return banded.Band, banded.Raw, nil

	case FieldCoApplicant, FieldMilitary:
		return canonicalYesNo(f, trimmed)

	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
}

func canonicalConsent(raw string) (string, string, error) {
	switch strings.ToLower(raw) {
	case ConsentGranted, "yes", "true", "agree", "agreed", "ok", "okay", "sure":
		return ConsentGranted, "", nil
	case ConsentDeclined, "no", "false", "decline":
		return ConsentDeclined, "", nil
	}
	return "", "", fmt.Errorf("%w: consent %q", ErrInvalidValue, raw)
}

func canonicalEnum(f Field, raw string, allowed map[string]bool) (string, string, error) {
	v := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", "_"))
	if !allowed[v] {
		return "", "", fmt.Errorf("%w: %s %q", ErrInvalidValue, f, raw)
	}
	return v, "", nil
}

func canonicalYesNo(f Field, raw string) (string, string, error) {
	switch strings.ToLower(raw) {
	case AnswerYes, "true", "yeah", "yep":
		return AnswerYes, "", nil
	case AnswerNo, "false", "nope":
		return AnswerNo, "", nil
	}
	return "", "", fmt.Errorf("%w: %s %q", ErrInvalidValue, f, raw)
}
