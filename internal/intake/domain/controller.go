package domain

// ActionType enumerates what the engine wants spoken next.
type ActionType string

const (
	ActionEndCall  ActionType = "end_call"
	ActionConfirm  ActionType = "confirm"
	ActionAsk      ActionType = "ask"
	ActionComplete ActionType = "complete"
)

// Action is the single next step for the conversation.
type Action struct {
	Type   ActionType `json:"type"`
	Field  Field      `json:"field,omitempty"`
	Value  string     `json:"value,omitempty"`
	Reason string     `json:"reason,omitempty"`
}

// End-call reasons.
const (
	EndReasonDoNotContact = "do_not_contact"
	EndReasonCallerEnded  = "caller_ended"
)

// maxOptionalAsks bounds how often an optional question is repeated before
// the controller moves on.
const maxOptionalAsks = 2

// NextAction decides the single next action for the session. Priority order,
// first match wins:
//
//  1. doNotContact ends the call.
//  2. The first set-but-unconfirmed field in fixed order is confirmed. This
//     keeps exactly one confirmation outstanding and resolves multi-field
//     extractions deterministically.
//  3. Prequalification readiness completes the conversation.
//  4. The first eligible unset field in fixed order is asked.
//  5. Fallback: complete.
//
// A rejected confirmation leaves the field set-but-unconfirmed, so rule 2
// re-fires until a correction or a repeated confirmation arrives.
func (s *Session) NextAction() Action {
	if s.DoNotContact {
		return Action{Type: ActionEndCall, Reason: EndReasonDoNotContact}
	}

	for _, f := range FieldOrder {
		fv := s.Fields[f]
		if fv.Status == StatusSet {
			return Action{Type: ActionConfirm, Field: f, Value: fv.Value}
		}
	}

	if s.Ready() {
		return Action{Type: ActionComplete}
	}

	for _, f := range FieldOrder {
		if !s.askable(f) {
			continue
		}
		if _, ok := s.Get(f); !ok {
			return Action{Type: ActionAsk, Field: f}
		}
	}

	// Unreachable when invariants hold: no unconfirmed values, not ready, and
	// nothing left to ask.
	return Action{Type: ActionComplete}
}

// askable reports whether the field may be asked for right now. Optional
// fields are only asked during the optional phase and only a bounded number
// of times; land_value is skipped unless the land status requires it.
func (s *Session) askable(f Field) bool {
	if f.Optional() {
		if s.Phase != PhaseOptional {
			return false
		}
		return s.AskCounts[f] < maxOptionalAsks
	}
	if f == FieldLandValue {
		return s.landValueRequired()
	}
	return true
}
