package appointment

import "github.com/caredesk/clinic-platform/internal/schedule"

// HasConflict reports whether the requested range overlaps any of the given
// appointments. Intervals are half-open, so an appointment ending at 09:30
// does not conflict with a request starting at 09:30.
func HasConflict(existing []Appointment, startTime, endTime string) bool {
	reqStart := schedule.ToMinutes(startTime)
	reqEnd := schedule.ToMinutes(endTime)

	for _, a := range existing {
		exStart := schedule.ToMinutes(a.StartTime)
		exEnd := schedule.ToMinutes(a.EndTime)
		if max(reqStart, exStart) < min(reqEnd, exEnd) {
			return true
		}
	}
	return false
}
