package domain

// Canonical values for enumerated fields. Validation rejects anything else;
// the extraction layer is prompted to emit these exact strings.

// Consent.
const (
	ConsentGranted  = "granted"
	ConsentDeclined = "declined"
)

// Contact method.
const (
	ContactMethodCall  = "call"
	ContactMethodText  = "text"
	ContactMethodEmail = "email"
)

// Land status.
const (
	LandStatusOwn        = "own"
	LandStatusBuying     = "buying"
	LandStatusFamilyLand = "family_land"
	LandStatusGiftedLand = "gifted_land"
	LandStatusRenting    = "renting"
	LandStatusNotYet     = "not_yet"
)

// Home type.
const (
	HomeTypeSingleWide = "single_wide"
	HomeTypeDoubleWide = "double_wide"
	HomeTypeModular    = "modular"
	HomeTypeNotSure    = "not_sure"
)

// Budget range.
const (
	BudgetLt100k   = "lt_100k"
	Budget100k150k = "100k_150k"
	Budget150k200k = "150k_200k"
	Budget200kPlus = "200k_plus"
	BudgetNotSure  = "not_sure"
)

// Down payment.
const (
	DownPaymentNone    = "none"
	DownPaymentLt5k    = "lt_5k"
	DownPayment5k10k   = "5k_10k"
	DownPayment10k20k  = "10k_20k"
	DownPayment20kPlus = "20k_plus"
	DownPaymentNotSure = "not_sure"
)

// Yes/no fields (co_applicant, military).
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

var contactMethods = map[string]bool{
	ContactMethodCall:  true,
	ContactMethodText:  true,
	ContactMethodEmail: true,
}

var landStatuses = map[string]bool{
	LandStatusOwn:        true,
	LandStatusBuying:     true,
	LandStatusFamilyLand: true,
	LandStatusGiftedLand: true,
	LandStatusRenting:    true,
	LandStatusNotYet:     true,
}

var homeTypes = map[string]bool{
	HomeTypeSingleWide: true,
	HomeTypeDoubleWide: true,
	HomeTypeModular:    true,
	HomeTypeNotSure:    true,
}

var budgetRanges = map[string]bool{
	BudgetLt100k:   true,
	Budget100k150k: true,
	Budget150k200k: true,
	Budget200kPlus: true,
	BudgetNotSure:  true,
}

var downPayments = map[string]bool{
	DownPaymentNone:    true,
	DownPaymentLt5k:    true,
	DownPayment5k10k:   true,
	DownPayment10k20k:  true,
	DownPayment20kPlus: true,
	DownPaymentNotSure: true,
}

var yesNo = map[string]bool{
	AnswerYes: true,
	AnswerNo:  true,
}

// usStates covers the 50 states plus DC, keyed by USPS code.
var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "DC": true, "FL": true, "GA": true, "HI": true,
	"ID": true, "IL": true, "IN": true, "IA": true, "KS": true, "KY": true,
	"LA": true, "ME": true, "MD": true, "MA": true, "MI": true, "MN": true,
	"MS": true, "MO": true, "MT": true, "NE": true, "NV": true, "NH": true,
	"NJ": true, "NM": true, "NY": true, "NC": true, "ND": true, "OH": true,
	"OK": true, "OR": true, "PA": true, "RI": true, "SC": true, "SD": true,
	"TN": true, "TX": true, "UT": true, "VT": true, "VA": true, "WA": true,
	"WV": true, "WI": true, "WY": true,
}
