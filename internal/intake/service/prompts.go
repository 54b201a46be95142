package service

import (
	"fmt"

	"prequal_backend/internal/intake/domain"
)

// Caller-facing question text per field. The telephony layer speaks these
// verbatim; wording changes here never affect flow control.
var fieldPrompts = map[domain.Field]string{
	domain.FieldConsent:       "Before we start, do I have your permission to collect some information to check what you might qualify for?",
	domain.FieldFirstName:     "What's your first name?",
	domain.FieldLastName:      "And your last name?",
	domain.FieldPhone:         "What's the best phone number to reach you?",
	domain.FieldEmail:         "What email address should we use?",
	domain.FieldContactMethod: "Do you prefer we follow up by call, text, or email?",
	domain.FieldState:         "Which state is the property in?",
	domain.FieldZip:           "What's the ZIP code there?",
	domain.FieldLandStatus:    "Do you already own land, or are you buying, using family land, or still looking?",
	domain.FieldLandValue:     "Roughly what is that land worth?",
	domain.FieldHomeType:      "Are you looking at a single wide, double wide, or modular home?",
	domain.FieldBedrooms:      "How many bedrooms do you need?",
	domain.FieldTimeline:      "When are you hoping to move in?",
	domain.FieldCreditRange:   "Roughly where does your credit score fall?",
	domain.FieldBudgetRange:   "What overall budget do you have in mind?",
	domain.FieldDownPayment:   "About how much could you put down?",
	domain.FieldContactTime:   "When is the best time of day to reach you?",
	domain.FieldCoApplicant:   "Will anyone be applying with you?",
	domain.FieldMilitary:      "Are you or your co-applicant a veteran or active military?",
}

var confirmPrompts = map[domain.Field]string{
	domain.FieldPhone: "I have your number as %s. Is that right?",
	domain.FieldEmail: "I have your email as %s. Is that right?",
	domain.FieldZip:   "That ZIP was %s, correct?",
}

const (
	completePrompt     = "Great news, that's everything I need. A home specialist will reach out shortly."
	endCallPrompt      = "No problem, we won't contact you. Thanks for your time."
	genericConfirmTmpl = "Just to confirm, I have %s. Is that right?"
)

// promptFor renders the speakable text for an action.
func promptFor(action domain.Action) string {
	switch action.Type {
	case domain.ActionAsk:
		return fieldPrompts[action.Field]
	case domain.ActionConfirm:
		if tmpl, ok := confirmPrompts[action.Field]; ok {
			return fmt.Sprintf(tmpl, action.Value)
		}
		return fmt.Sprintf(genericConfirmTmpl, action.Value)
	case domain.ActionComplete:
		return completePrompt
	case domain.ActionEndCall:
		return endCallPrompt
	}
	return ""
}
