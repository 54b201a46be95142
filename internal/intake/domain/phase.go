package domain

// Phase is one step in the fixed conversation sequence.
type Phase string

const (
	PhaseWelcome          Phase = "welcome"
	PhaseConsent          Phase = "consent"
	PhaseContactInfo      Phase = "contact_info"
	PhasePropertyLocation Phase = "property_location"
	PhaseLandSituation    Phase = "land_situation"
	PhaseHomeBasics       Phase = "home_basics"
	PhaseTimeline         Phase = "timeline"
	PhaseFinancial        Phase = "financial"
	PhaseOptional         Phase = "optional_questions"
	PhasePrequalified     Phase = "prequalified"
	PhaseEndCall          Phase = "end_call"
)

// phaseSequence is the linear phase order. Phases are never revisited; the
// only extra edge is any phase -> end_call.
var phaseSequence = []Phase{
	PhaseWelcome,
	PhaseConsent,
	PhaseContactInfo,
	PhasePropertyLocation,
	PhaseLandSituation,
	PhaseHomeBasics,
	PhaseTimeline,
	PhaseFinancial,
	PhaseOptional,
	PhasePrequalified,
}

// phaseFields maps each non-terminal phase to the fields it owns.
var phaseFields = map[Phase][]Field{
	PhaseWelcome:          {},
	PhaseConsent:          {FieldConsent},
	PhaseContactInfo:      {FieldFirstName, FieldLastName, FieldPhone, FieldEmail, FieldContactMethod},
	PhasePropertyLocation: {FieldState, FieldZip},
	PhaseLandSituation:    {FieldLandStatus, FieldLandValue},
	PhaseHomeBasics:       {FieldHomeType, FieldBedrooms},
	PhaseTimeline:         {FieldTimeline},
	PhaseFinancial:        {FieldCreditRange, FieldBudgetRange, FieldDownPayment, FieldContactTime},
	PhaseOptional:         {FieldCoApplicant, FieldMilitary},
}

// NextPhase returns the phase following p in the linear sequence, or p itself
// when p is terminal.
func NextPhase(p Phase) Phase {
	for i, candidate := range phaseSequence {
		if candidate == p && i+1 < len(phaseSequence) {
			return phaseSequence[i+1]
		}
	}
	return p
}

// Terminal reports whether the phase ends the conversation flow.
func (p Phase) Terminal() bool {
	return p == PhasePrequalified || p == PhaseEndCall
}
