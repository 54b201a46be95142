package domain

import "testing"

func TestNextActionAsksFirstUnsetFieldInOrder(t *testing.T) {
	s := NewSession("inbound_call", testNow)

	action := s.NextAction()
	if action.Type != ActionAsk || action.Field != FieldConsent {
		t.Fatalf("action = %+v, want ask consent", action)
	}

	setConfirmed(t, s, FieldConsent, "yes")
	action = s.NextAction()
	if action.Type != ActionAsk || action.Field != FieldFirstName {
		t.Fatalf("action = %+v, want ask first_name", action)
	}
}

func TestNextActionConfirmBeatsAsk(t *testing.T) {
	s := NewSession("inbound_call", testNow)
	setConfirmed(t, s, FieldConsent, "yes")

	if err := s.Set(FieldFirstName, "Maria", false, testNow); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	action := s.NextAction()
	if action.Type != ActionConfirm || action.Field != FieldFirstName {
		t.Fatalf("action = %+v, want confirm first_name", action)
	}
	if action.Value != "Maria" {
		t.Fatalf("confirm value = %q, want the stored value", action.Value)
	}
}

func TestNextActionConfirmsEarliestOfSeveralUnconfirmed(t *testing.T) {
	s := NewSession("inbound_call", testNow)
	setConfirmed(t, s, FieldConsent, "yes")

	// One utterance produced three fields at once.
	for _, f := range []Field{FieldLastName, FieldFirstName, FieldPhone} {
		raw := map[Field]string{
			FieldFirstName: "Maria",
			FieldLastName:  "Lopez",
			FieldPhone:     "2025550143",
		}[f]
		if err := s.Set(f, raw, false, testNow); err != nil {
			t.Fatalf("Set(%s) failed: %v", f, err)
		}
	}

	// Fixed field order decides which confirmation goes first.
	action := s.NextAction()
	if action.Type != ActionConfirm || action.Field != FieldFirstName {
		t.Fatalf("action = %+v, want confirm first_name first", action)
	}
}

func TestNextActionRejectedConfirmationRefires(t *testing.T) {
	s := NewSession("inbound_call", testNow)
	setConfirmed(t, s, FieldConsent, "yes")
	if err := s.Set(FieldFirstName, "Maria", false, testNow); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// The caller rejects the read-back; no correction arrives this turn. The
	// field stays set-but-unconfirmed and the controller asks again.
	action := s.NextAction()
	if action.Type != ActionConfirm || action.Field != FieldFirstName {
		t.Fatalf("action = %+v, want confirm first_name again", action)
	}
}

func TestNextActionCompletesWhenReady(t *testing.T) {
	s := NewSession("inbound_call", testNow)
	fillAllRequired(t, s)
	s.AdvancePhases(testNow)

	// Prequalified phase is past the optional phase, so nothing is askable.
	action := s.NextAction()
	if action.Type != ActionComplete {
		t.Fatalf("action = %+v, want complete", action)
	}
}

func TestNextActionSkipsLandValueForRenters(t *testing.T) {
	s := NewSession("inbound_call", testNow)
	fillContactInfo(t, s)
	setConfirmed(t, s, FieldState, "TX")
	setConfirmed(t, s, FieldZip, "75001")
	setConfirmed(t, s, FieldLandStatus, "renting")

	action := s.NextAction()
	if action.Type != ActionAsk || action.Field != FieldHomeType {
		t.Fatalf("action = %+v, want ask home_type (land_value skipped)", action)
	}

	setConfirmed(t, s, FieldLandStatus, "own")
	action = s.NextAction()
	if action.Type != ActionAsk || action.Field != FieldLandValue {
		t.Fatalf("action = %+v, want ask land_value for a land owner", action)
	}
}

func TestOptionalQuestionsBoundedAsks(t *testing.T) {
	s := NewSession("inbound_call", testNow)
	fillAllRequired(t, s)
	s.Phase = PhaseOptional

	action := s.NextAction()
	if action.Type != ActionAsk || action.Field != FieldCoApplicant {
		t.Fatalf("action = %+v, want ask co_applicant in the optional phase", action)
	}

	// After the bounded number of unanswered asks the controller moves on.
	s.IncrementAsk(FieldCoApplicant)
	s.IncrementAsk(FieldCoApplicant)
	action = s.NextAction()
	if action.Type != ActionAsk || action.Field != FieldMilitary {
		t.Fatalf("action = %+v, want ask military after co_applicant exhausted", action)
	}

	s.IncrementAsk(FieldMilitary)
	s.IncrementAsk(FieldMilitary)
	action = s.NextAction()
	if action.Type != ActionComplete {
		t.Fatalf("action = %+v, want complete once optional questions exhausted", action)
	}
}
