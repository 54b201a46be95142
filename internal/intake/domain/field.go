// Package domain provides the conversation decision engine for loan
// prequalification intake: the session/field model, the phase state machine,
// and the deterministic next-action controller.
package domain

// Field is a named unit of data collected during the conversation.
type Field string

const (
	FieldConsent       Field = "consent"
	FieldFirstName     Field = "first_name"
	FieldLastName      Field = "last_name"
	FieldPhone         Field = "phone"
	FieldEmail         Field = "email"
	FieldContactMethod Field = "contact_method"
	FieldState         Field = "state"
	FieldZip           Field = "zip"
	FieldLandStatus    Field = "land_status"
	FieldLandValue     Field = "land_value"
	FieldHomeType      Field = "home_type"
	FieldBedrooms      Field = "bedrooms"
	FieldTimeline      Field = "timeline"
	FieldCreditRange   Field = "credit_range"
	FieldBudgetRange   Field = "budget_range"
	FieldDownPayment   Field = "down_payment"
	FieldContactTime   Field = "contact_time"
	FieldCoApplicant   Field = "co_applicant"
	FieldMilitary      Field = "military"
)

// FieldOrder is the fixed ask/confirm order. The controller resolves multiple
// outstanding confirmations and chooses the next question by scanning this
// slice, which makes every decision deterministic.
var FieldOrder = []Field{
	FieldConsent,
	FieldFirstName,
	FieldLastName,
	FieldPhone,
	FieldEmail,
	FieldContactMethod,
	FieldState,
	FieldZip,
	FieldLandStatus,
	FieldLandValue,
	FieldHomeType,
	FieldBedrooms,
	FieldTimeline,
	FieldCreditRange,
	FieldBudgetRange,
	FieldDownPayment,
	FieldContactTime,
	FieldCoApplicant,
	FieldMilitary,
}

var optionalFields = map[Field]bool{
	FieldCoApplicant: true,
	FieldMilitary:    true,
}

// bandedFields keep the original utterance alongside the computed band.
var bandedFields = map[Field]bool{
	FieldLandValue:   true,
	FieldCreditRange: true,
	FieldTimeline:    true,
	FieldContactTime: true,
}

// minimumFields gate the first persistence of a partial lead record.
var minimumFields = []Field{
	FieldConsent,
	FieldFirstName,
	FieldLastName,
	FieldPhone,
	FieldEmail,
	FieldContactMethod,
}

// IsKnownField reports whether name maps to a collectable field.
func IsKnownField(name string) bool {
	for _, f := range FieldOrder {
		if string(f) == name {
			return true
		}
	}
	return false
}

// Optional reports whether the field is collected opportunistically and never
// blocks phase advancement or prequalification.
func (f Field) Optional() bool {
	return optionalFields[f]
}

// Banded reports whether the field stores a raw utterance plus computed band.
func (f Field) Banded() bool {
	return bandedFields[f]
}

// landGatedStatuses are the land_status values for which land_value becomes a
// required field.
var landGatedStatuses = map[string]bool{
	LandStatusOwn:        true,
	LandStatusBuying:     true,
	LandStatusFamilyLand: true,
	LandStatusGiftedLand: true,
}
