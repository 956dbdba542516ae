package clinic

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`
	WhatsAppNumber string `json:"whatsapp_number,omitempty"`
}

type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Pincode string `json:"pincode"`
}

type Settings struct {
	AppointmentSlotMinutes int    `json:"appointment_slot_minutes"`
	AllowOverbooking       bool   `json:"allow_overbooking"`
	ReminderLeadMinutes    int    `json:"reminder_lead_minutes"`
	Currency               string `json:"currency"`
	DashboardActive        bool   `json:"dashboard_active"`
}

func defaultSettings() Settings {
	return Settings{
		AppointmentSlotMinutes: 15,
		AllowOverbooking:       false,
		ReminderLeadMinutes:    120,
		Currency:               "INR",
		DashboardActive:        false,
	}
}

type Clinic struct {
	ID                    uuid.UUID
	Name                  string
	Code                  string
	Contact               Contact
	Address               Address
	Timezone              string
	Specialties           []string
	Settings              Settings
	Active                bool
	OnboardingCompletedAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TimingSlot is an open interval within one day of the clinic's public
// opening hours, HH:MM strings.
type TimingSlot struct {
	Start string `json:"start_time"`
	End   string `json:"end_time"`
}

type DayTiming struct {
	DayOfWeek int          `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	Open      bool         `json:"is_open"`
	Slots     []TimingSlot `json:"slots"`
}

// Timing is a clinic's default weekly opening hours, one entry per day.
type Timing struct {
	ID        uuid.UUID
	ClinicID  uuid.UUID
	Timezone  string
	Week      [7]DayTiming
	Default   bool
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OpenState tells the WhatsApp auto-reply whether the clinic is open right
// now, and if not when it next opens.
type OpenState struct {
	OpenNow      bool
	NextOpenText string
}
