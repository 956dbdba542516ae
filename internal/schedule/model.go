package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Context tags which of a doctor's two independent recurring availability
// definitions a schedule belongs to.
type Context string

const (
	ContextClinic   Context = "clinic"
	ContextHospital Context = "hospital"
)

func (c Context) Valid() bool {
	return c == ContextClinic || c == ContextHospital
}

// Slot is a contiguous start-end range within one day, both HH:MM 24-hour
// strings in the schedule's declared timezone.
type Slot struct {
	Start string `json:"start_time"`
	End   string `json:"end_time"`
}

type DaySchedule struct {
	DayOfWeek int    `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	Available bool   `json:"is_available"`
	Slots     []Slot `json:"slots"`
}

// WeekSchedule always holds exactly one entry per day of week, indexed
// Sunday=0. The fixed size makes the 7-entry rule structural.
type WeekSchedule [7]DaySchedule

// Normalize reindexes the entries so that position i holds day-of-week i.
// Input order is whatever the client sent; lookups rely on position.
func (w *WeekSchedule) Normalize() {
	var out WeekSchedule
	for i := range out {
		out[i].DayOfWeek = i
	}
	for _, d := range w {
		if d.DayOfWeek >= 0 && d.DayOfWeek <= 6 {
			out[d.DayOfWeek] = d
		}
	}
	*w = out
}

// Day returns the entry for the given day of week.
func (w WeekSchedule) Day(dow int) DaySchedule {
	return w[dow]
}

// DoctorSchedule is one doctor's recurring weekly availability for one
// context within a clinic. At most one active row exists per
// (clinic, doctor, context).
type DoctorSchedule struct {
	ID           uuid.UUID
	ClinicID     uuid.UUID
	DoctorID     uuid.UUID
	Context      Context
	LocationName string
	Timezone     string
	Week         WeekSchedule
	Active       bool
	CreatedBy    *uuid.UUID
	UpdatedBy    *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
