package domain

import "encoding/json"

type HalalStatus string

const (
	HalalCertified  HalalStatus = "certified"
	HalalPartial    HalalStatus = "partial"
	HalalMuscleMeat HalalStatus = "muscle_meat"
	HalalMixed      HalalStatus = "mixed"
	HalalUnknown    HalalStatus = "unknown"
	NotHalal        HalalStatus = "not_halal"
)

type AlcoholStatus string

const (
	AlcoholNone     AlcoholStatus = "none"
	AlcoholBeerWine AlcoholStatus = "beer_wine"
	AlcoholFullBar  AlcoholStatus = "full_bar"
	AlcoholUnknown  AlcoholStatus = "unknown"
)

// NormalizeHalalStatus validates model output against the closed enum set.
// Anything outside it collapses to unknown; the raw response is still kept
// in the audit log.
func NormalizeHalalStatus(s string) HalalStatus {
	switch HalalStatus(s) {
	case HalalCertified, HalalPartial, HalalMuscleMeat, HalalMixed, HalalUnknown, NotHalal:
		return HalalStatus(s)
	default:
		return HalalUnknown
	}
}

func NormalizeAlcoholStatus(s string) AlcoholStatus {
	switch AlcoholStatus(s) {
	case AlcoholNone, AlcoholBeerWine, AlcoholFullBar, AlcoholUnknown:
		return AlcoholStatus(s)
	default:
		return AlcoholUnknown
	}
}

// ComplianceAssessment is the validated result of one model call. Raw holds
// the parsed response verbatim for the audit log.
type ComplianceAssessment struct {
	IsHalal       bool            `json:"isHalal"`
	HalalStatus   HalalStatus     `json:"halalStatus"`
	AlcoholStatus AlcoholStatus   `json:"alcoholStatus"`
	DietaryLabels []string        `json:"dietaryLabels"`
	Raw           json.RawMessage `json:"-"`
}

// ReviewSample is the slice of a review passed to the model.
type ReviewSample struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
	Date   string `json:"date"`
}

type DisplayClass string

const (
	ClassVerified    DisplayClass = "verified"
	ClassProbable    DisplayClass = "probable"
	ClassOptions     DisplayClass = "options"
	ClassUnconfirmed DisplayClass = "unconfirmed"
)

// DisplayClassFor maps the persisted halal status onto the public
// display taxonomy.
func DisplayClassFor(status HalalStatus) DisplayClass {
	switch status {
	case HalalCertified:
		return ClassVerified
	case HalalPartial, HalalMuscleMeat:
		return ClassProbable
	case HalalMixed:
		return ClassOptions
	default:
		return ClassUnconfirmed
	}
}
