package domain

import "time"

// landValueRequired reports whether the land_value field currently counts as
// required. It only does when the caller's land status indicates they control
// land (own, buying, family_land, gifted_land).
func (s *Session) landValueRequired() bool {
	status, ok := s.Get(FieldLandStatus)
	return ok && landGatedStatuses[status]
}

// fieldRequired reports whether the field blocks phase advancement and
// prequalification right now.
func (s *Session) fieldRequired(f Field) bool {
	if f.Optional() {
		return false
	}
	if f == FieldLandValue {
		return s.landValueRequired()
	}
	return true
}

// fieldSatisfied reports whether the field is collected and confirmed.
func (s *Session) fieldSatisfied(f Field) bool {
	_, ok := s.Get(f)
	return ok && s.IsConfirmed(f)
}

// PhaseComplete reports whether every required field owned by the phase is
// collected and confirmed.
func (s *Session) PhaseComplete(p Phase) bool {
	for _, f := range phaseFields[p] {
		if !s.fieldRequired(f) {
			continue
		}
		if !s.fieldSatisfied(f) {
			return false
		}
	}
	return true
}

// Ready is the cross-cutting prequalification predicate, independent of the
// current phase: consent granted plus every required field collected and
// confirmed. Decoupling it from the phase sequence means skipped optional
// questions never block completion.
func (s *Session) Ready() bool {
	if consent, ok := s.Get(FieldConsent); !ok || consent != ConsentGranted || !s.IsConfirmed(FieldConsent) {
		return false
	}
	for _, f := range FieldOrder {
		if !s.fieldRequired(f) {
			continue
		}
		if !s.fieldSatisfied(f) {
			return false
		}
	}
	return true
}

// MinimumCollected reports whether the fields gating the first persistence of
// a partial lead record are all confirmed.
func (s *Session) MinimumCollected() bool {
	if consent, ok := s.Get(FieldConsent); !ok || consent != ConsentGranted {
		return false
	}
	for _, f := range minimumFields {
		if !s.fieldSatisfied(f) {
			return false
		}
	}
	return true
}

// AdvancePhases walks the session forward through every completed phase, and
// jumps straight to prequalified once the readiness predicate holds. It never
// moves a terminal session.
func (s *Session) AdvancePhases(now time.Time) {
	if s.Phase.Terminal() || s.Ended {
		return
	}

	if s.Ready() {
		if s.Phase != PhasePrequalified {
			s.Phase = PhasePrequalified
			s.Prequalified = true
			s.UpdatedAt = now
			s.appendEvent(EventPrequalified, "", "", now)
		}
		return
	}

	for !s.Phase.Terminal() && s.PhaseComplete(s.Phase) {
		next := NextPhase(s.Phase)
		if next == s.Phase {
			return
		}
		s.Phase = next
		s.UpdatedAt = now
		s.appendEvent(EventPhaseAdvanced, "", string(next), now)
		if s.Phase == PhasePrequalified {
			s.Prequalified = true
			s.appendEvent(EventPrequalified, "", "", now)
			return
		}
	}
}
