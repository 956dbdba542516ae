package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func weekWith(dow int, slots ...Slot) WeekSchedule {
	var w WeekSchedule
	for i := range w {
		w[i].DayOfWeek = i
	}
	w[dow].Available = true
	w[dow].Slots = slots
	return w
}

func TestToMinutes(t *testing.T) {
	assert.Equal(t, 0, ToMinutes("00:00"))
	assert.Equal(t, 570, ToMinutes("09:30"))
	assert.Equal(t, 1439, ToMinutes("23:59"))
	assert.Equal(t, -1, ToMinutes("930"))
	assert.Equal(t, -1, ToMinutes("ab:cd"))
	assert.Equal(t, -1, ToMinutes(""))
}

func TestMatchContext(t *testing.T) {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) // a Monday

	clinicSched := DoctorSchedule{
		Context: ContextClinic,
		Week:    weekWith(1, Slot{Start: "09:00", End: "13:00"}, Slot{Start: "17:00", End: "20:00"}),
	}
	hospitalSched := DoctorSchedule{
		Context: ContextHospital,
		Week:    weekWith(1, Slot{Start: "14:00", End: "16:00"}),
	}
	schedules := []DoctorSchedule{clinicSched, hospitalSched}

	t.Run("fully inside clinic slot", func(t *testing.T) {
		got, ok := MatchContext(schedules, monday, "09:00", "09:30")
		assert.True(t, ok)
		assert.Equal(t, ContextClinic, got)
	})

	t.Run("fully inside hospital slot", func(t *testing.T) {
		got, ok := MatchContext(schedules, monday, "14:30", "15:00")
		assert.True(t, ok)
		assert.Equal(t, ContextHospital, got)
	})

	t.Run("exact slot boundaries match", func(t *testing.T) {
		got, ok := MatchContext(schedules, monday, "17:00", "20:00")
		assert.True(t, ok)
		assert.Equal(t, ContextClinic, got)
	})

	t.Run("partial overlap does not match", func(t *testing.T) {
		_, ok := MatchContext(schedules, monday, "08:30", "09:30")
		assert.False(t, ok)
	})

	t.Run("range spanning two slots does not match", func(t *testing.T) {
		_, ok := MatchContext(schedules, monday, "12:30", "17:30")
		assert.False(t, ok)
	})

	t.Run("gap between slots does not match", func(t *testing.T) {
		_, ok := MatchContext(schedules, monday, "13:30", "14:00")
		assert.False(t, ok)
	})

	t.Run("unavailable day does not match", func(t *testing.T) {
		sunday := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
		_, ok := MatchContext(schedules, sunday, "09:00", "09:30")
		assert.False(t, ok)
	})

	t.Run("first schedule wins on overlap", func(t *testing.T) {
		overlapping := []DoctorSchedule{
			{Context: ContextHospital, Week: weekWith(1, Slot{Start: "09:00", End: "13:00"})},
			clinicSched,
		}
		got, ok := MatchContext(overlapping, monday, "10:00", "10:30")
		assert.True(t, ok)
		assert.Equal(t, ContextHospital, got)
	})

	t.Run("no schedules", func(t *testing.T) {
		_, ok := MatchContext(nil, monday, "09:00", "09:30")
		assert.False(t, ok)
	})
}

func TestWeekScheduleNormalize(t *testing.T) {
	var w WeekSchedule
	w[0] = DaySchedule{DayOfWeek: 3, Available: true, Slots: []Slot{{Start: "10:00", End: "12:00"}}}
	w[1] = DaySchedule{DayOfWeek: 1, Available: true}

	w.Normalize()

	for i, d := range w {
		assert.Equal(t, i, d.DayOfWeek)
	}
	assert.True(t, w.Day(3).Available)
	assert.Len(t, w.Day(3).Slots, 1)
	assert.True(t, w.Day(1).Available)
	assert.False(t, w.Day(0).Available)
}
