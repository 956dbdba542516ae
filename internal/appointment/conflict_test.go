package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func existingAt(ranges ...[2]string) []Appointment {
	out := make([]Appointment, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, Appointment{StartTime: r[0], EndTime: r[1]})
	}
	return out
}

func TestHasConflict(t *testing.T) {
	t.Run("no existing appointments", func(t *testing.T) {
		assert.False(t, HasConflict(nil, "09:00", "09:30"))
	})

	t.Run("back to back is not a conflict", func(t *testing.T) {
		existing := existingAt([2]string{"09:00", "09:30"})
		assert.False(t, HasConflict(existing, "09:30", "10:00"))
		assert.False(t, HasConflict(existing, "08:30", "09:00"))
	})

	t.Run("partial overlap conflicts", func(t *testing.T) {
		existing := existingAt([2]string{"09:00", "09:30"})
		assert.True(t, HasConflict(existing, "09:15", "09:45"))
		assert.True(t, HasConflict(existing, "08:45", "09:15"))
	})

	t.Run("containment conflicts both ways", func(t *testing.T) {
		existing := existingAt([2]string{"09:00", "10:00"})
		assert.True(t, HasConflict(existing, "09:15", "09:45"))
		assert.True(t, HasConflict(existing, "08:00", "11:00"))
	})

	t.Run("identical range conflicts", func(t *testing.T) {
		existing := existingAt([2]string{"09:00", "09:30"})
		assert.True(t, HasConflict(existing, "09:00", "09:30"))
	})

	t.Run("only one of many needs to overlap", func(t *testing.T) {
		existing := existingAt(
			[2]string{"09:00", "09:30"},
			[2]string{"10:00", "10:30"},
			[2]string{"11:00", "11:30"},
		)
		assert.False(t, HasConflict(existing, "09:30", "10:00"))
		assert.True(t, HasConflict(existing, "10:15", "10:45"))
	})
}
