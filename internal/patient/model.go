package patient

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

type Address struct {
	Line1   string `json:"line1,omitempty"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

type Patient struct {
	ID                uuid.UUID
	ClinicID          uuid.UUID
	Code              string // unique per clinic
	FullName          string
	Gender            Gender
	DateOfBirth       *time.Time
	BloodGroup        string
	Phone             string
	WhatsAppNumber    string
	Email             string
	Address           Address
	Allergies         []string
	ChronicConditions []string
	EmergencyContact  *EmergencyContact
	ReferredBy        string
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
