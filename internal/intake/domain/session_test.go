package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"prequal_backend/internal/intake/normalize"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestFieldRatchet(t *testing.T) {
	s := NewSession("web_call", testNow)

	if _, ok := s.Get(FieldFirstName); ok {
		t.Fatal("fresh session should have no first name")
	}

	if err := s.Set(FieldFirstName, "Maria", false, testNow); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, _ := s.Get(FieldFirstName); got != "Maria" {
		t.Fatalf("Get = %q, want Maria", got)
	}
	if s.IsConfirmed(FieldFirstName) {
		t.Fatal("value should start unconfirmed")
	}

	if err := s.Confirm(FieldFirstName, testNow); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if !s.IsConfirmed(FieldFirstName) {
		t.Fatal("value should be confirmed")
	}

	// A second confirm is a no-op, not an error, and appends no event.
	eventCount := len(s.Events)
	if err := s.Confirm(FieldFirstName, testNow); err != nil {
		t.Fatalf("repeat Confirm failed: %v", err)
	}
	if len(s.Events) != eventCount {
		t.Fatal("repeat Confirm should not append an event")
	}

	// A correction re-opens confirmation.
	if err := s.Set(FieldFirstName, "Marie", false, testNow); err != nil {
		t.Fatalf("correction failed: %v", err)
	}
	if s.IsConfirmed(FieldFirstName) {
		t.Fatal("correction should re-open confirmation")
	}
	if got, _ := s.Get(FieldFirstName); got != "Marie" {
		t.Fatalf("Get = %q, want corrected value", got)
	}
}

func TestConfirmWithoutValue(t *testing.T) {
	s := NewSession("inbound_call", testNow)
	if err := s.Confirm(FieldPhone, testNow); !errors.Is(err, ErrNoValue) {
		t.Fatalf("Confirm on unset field = %v, want ErrNoValue", err)
	}
}

func TestSetRejectsUnknownAndInvalid(t *testing.T) {
	s := NewSession("inbound_call", testNow)

	if err := s.Set(Field("favorite_color"), "blue", false, testNow); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("unknown field = %v, want ErrUnknownField", err)
	}
	if err := s.Set(FieldZip, "1234", false, testNow); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("bad zip = %v, want ErrInvalidValue", err)
	}
	if err := s.Set(FieldState, "ZZ", false, testNow); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("bad state = %v, want ErrInvalidValue", err)
	}
	if err := s.Set(FieldEmail, "not an email", false, testNow); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("bad email = %v, want ErrInvalidValue", err)
	}
	if err := s.Set(FieldTimeline, "February this year", false, testNow); !errors.Is(err, ErrAmbiguousTimeline) {
		t.Fatalf("ambiguous timeline = %v, want ErrAmbiguousTimeline", err)
	}

	// Nothing invalid reached the session.
	for _, f := range []Field{FieldZip, FieldState, FieldEmail, FieldTimeline} {
		if _, ok := s.Get(f); ok {
			t.Fatalf("invalid input for %s was stored", f)
		}
	}
}

func TestBandedFieldsKeepRaw(t *testing.T) {
	s := NewSession("inbound_call", testNow)

	if err := s.Set(FieldCreditRange, "six fifty", false, testNow); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, _ := s.Get(FieldCreditRange); got != normalize.CreditBand620679 {
		t.Fatalf("credit band = %q, want %q", got, normalize.CreditBand620679)
	}
	if s.GetRaw(FieldCreditRange) != "six fifty" {
		t.Fatalf("raw = %q, want original utterance", s.GetRaw(FieldCreditRange))
	}

	if err := s.Set(FieldLandValue, "about forty thousand", false, testNow); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, _ := s.Get(FieldLandValue); got != normalize.LandBand25k50k {
		t.Fatalf("land band = %q, want %q", got, normalize.LandBand25k50k)
	}
}

func TestConsentDeclinedEndsConversation(t *testing.T) {
	s := NewSession("inbound_call", testNow)

	if err := s.Set(FieldConsent, "no", false, testNow); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !s.DoNotContact {
		t.Fatal("declined consent should set doNotContact")
	}
	if s.Phase != PhaseEndCall {
		t.Fatalf("phase = %s, want %s", s.Phase, PhaseEndCall)
	}

	action := s.NextAction()
	if action.Type != ActionEndCall || action.Reason != EndReasonDoNotContact {
		t.Fatalf("action = %+v, want end_call/do_not_contact", action)
	}
}

func TestConsentSynonyms(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"granted", ConsentGranted},
		{"yes", ConsentGranted},
		{"Sure", ConsentGranted},
		{"okay", ConsentGranted},
		{"declined", ConsentDeclined},
		{"no", ConsentDeclined},
		{"decline", ConsentDeclined},
	}
	for _, tt := range tests {
		s := NewSession("inbound_call", testNow)
		if err := s.Set(FieldConsent, tt.in, false, testNow); err != nil {
			t.Fatalf("Set(consent, %q) failed: %v", tt.in, err)
		}
		if got, _ := s.Get(FieldConsent); got != tt.want {
			t.Fatalf("consent %q canonicalized to %q, want %q", tt.in, got, tt.want)
		}
	}

	s := NewSession("inbound_call", testNow)
	if err := s.Set(FieldConsent, "maybe", false, testNow); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("Set(consent, maybe) = %v, want ErrInvalidValue", err)
	}
}

func TestEndedSessionIsReadOnly(t *testing.T) {
	s := NewSession("inbound_call", testNow)
	s.End(EndReasonCallerEnded, testNow)

	if err := s.Set(FieldFirstName, "Maria", false, testNow); !errors.Is(err, ErrSessionEnded) {
		t.Fatalf("Set on ended session = %v, want ErrSessionEnded", err)
	}
	if err := s.Confirm(FieldFirstName, testNow); !errors.Is(err, ErrSessionEnded) {
		t.Fatalf("Confirm on ended session = %v, want ErrSessionEnded", err)
	}
}

func TestLockDealerFirstCallWins(t *testing.T) {
	s := NewSession("inbound_call", testNow)
	first := uuid.New()
	second := uuid.New()

	s.LockDealer(first, LockReasonDealerNumber, testNow)
	s.LockDealer(second, LockReasonReferral, testNow)

	if s.Attribution.LockedDealerID == nil || *s.Attribution.LockedDealerID != first {
		t.Fatal("first lock should stand")
	}
	if s.Attribution.LockedReason != LockReasonDealerNumber {
		t.Fatalf("lock reason = %q, want %q", s.Attribution.LockedReason, LockReasonDealerNumber)
	}
}
