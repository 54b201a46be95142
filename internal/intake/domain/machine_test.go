package domain

import "testing"

// setConfirmed stores and confirms a field in one step.
func setConfirmed(t *testing.T, s *Session, f Field, raw string) {
	t.Helper()
	if err := s.Set(f, raw, true, testNow); err != nil {
		t.Fatalf("Set(%s, %q) failed: %v", f, raw, err)
	}
}

// fillContactInfo confirms consent plus the contact fields that gate the
// first lead persistence.
func fillContactInfo(t *testing.T, s *Session) {
	t.Helper()
	setConfirmed(t, s, FieldConsent, "yes")
	setConfirmed(t, s, FieldFirstName, "Maria")
	setConfirmed(t, s, FieldLastName, "Lopez")
	setConfirmed(t, s, FieldPhone, "2025550143")
	setConfirmed(t, s, FieldEmail, "maria@example.com")
	setConfirmed(t, s, FieldContactMethod, "call")
}

// fillAllRequired confirms every required field for a caller who owns land.
func fillAllRequired(t *testing.T, s *Session) {
	t.Helper()
	fillContactInfo(t, s)
	setConfirmed(t, s, FieldState, "TX")
	setConfirmed(t, s, FieldZip, "75001")
	setConfirmed(t, s, FieldLandStatus, "own")
	setConfirmed(t, s, FieldLandValue, "forty thousand")
	setConfirmed(t, s, FieldHomeType, "double wide")
	setConfirmed(t, s, FieldBedrooms, "three")
	setConfirmed(t, s, FieldTimeline, "3 months")
	setConfirmed(t, s, FieldCreditRange, "680")
	setConfirmed(t, s, FieldBudgetRange, "100k_150k")
	setConfirmed(t, s, FieldDownPayment, "5k_10k")
	setConfirmed(t, s, FieldContactTime, "weekday mornings")
}

func TestLandValueGating(t *testing.T) {
	s := NewSession("inbound_call", testNow)
	fillContactInfo(t, s)
	setConfirmed(t, s, FieldState, "TX")
	setConfirmed(t, s, FieldZip, "75001")
	setConfirmed(t, s, FieldHomeType, "single wide")
	setConfirmed(t, s, FieldBedrooms, "2")
	setConfirmed(t, s, FieldTimeline, "6 months")
	setConfirmed(t, s, FieldCreditRange, "700")
	setConfirmed(t, s, FieldBudgetRange, "lt_100k")
	setConfirmed(t, s, FieldDownPayment, "none")
	setConfirmed(t, s, FieldContactTime, "evenings")

	// Renting: land value never required, readiness only waits on land status.
	setConfirmed(t, s, FieldLandStatus, "renting")
	if !s.Ready() {
		t.Fatal("renter with all other fields confirmed should be ready")
	}

	// Owning flips land value to required.
	setConfirmed(t, s, FieldLandStatus, "own")
	if s.Ready() {
		t.Fatal("land owner should not be ready without a land value")
	}
	setConfirmed(t, s, FieldLandValue, "30000")
	if !s.Ready() {
		t.Fatal("land owner with land value should be ready")
	}
}

func TestMinimumCollected(t *testing.T) {
	s := NewSession("inbound_call", testNow)
	if s.MinimumCollected() {
		t.Fatal("fresh session should not have minimum fields")
	}

	fillContactInfo(t, s)
	if !s.MinimumCollected() {
		t.Fatal("confirmed contact info should satisfy the minimum")
	}
}

func TestAdvancePhasesWalksCompletedPhases(t *testing.T) {
	s := NewSession("inbound_call", testNow)

	fillContactInfo(t, s)
	s.AdvancePhases(testNow)
	if s.Phase != PhasePropertyLocation {
		t.Fatalf("phase = %s, want %s", s.Phase, PhasePropertyLocation)
	}

	setConfirmed(t, s, FieldState, "TX")
	setConfirmed(t, s, FieldZip, "75001")
	s.AdvancePhases(testNow)
	if s.Phase != PhaseLandSituation {
		t.Fatalf("phase = %s, want %s", s.Phase, PhaseLandSituation)
	}
}

func TestAdvancePhasesJumpsToPrequalifiedWhenReady(t *testing.T) {
	s := NewSession("inbound_call", testNow)
	fillAllRequired(t, s)

	s.AdvancePhases(testNow)
	if s.Phase != PhasePrequalified {
		t.Fatalf("phase = %s, want %s", s.Phase, PhasePrequalified)
	}
	if !s.Prequalified {
		t.Fatal("session should be marked prequalified")
	}

	// Advancing again is a no-op.
	s.AdvancePhases(testNow)
	if s.Phase != PhasePrequalified {
		t.Fatalf("phase moved off prequalified to %s", s.Phase)
	}
}

func TestOptionalFieldsNeverBlockReadiness(t *testing.T) {
	s := NewSession("inbound_call", testNow)
	fillAllRequired(t, s)

	if _, ok := s.Get(FieldCoApplicant); ok {
		t.Fatal("co_applicant should be unset")
	}
	if !s.Ready() {
		t.Fatal("unanswered optional questions must not block readiness")
	}
}
