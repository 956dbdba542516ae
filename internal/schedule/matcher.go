package schedule

import (
	"strconv"
	"strings"
	"time"
)

// ToMinutes converts an HH:MM string to minutes since midnight. Inputs are
// validated at the HTTP boundary; malformed values yield -1 so they can
// never match a slot.
func ToMinutes(hhmm string) int {
	h, m, ok := splitHHMM(hhmm)
	if !ok {
		return -1
	}
	return h*60 + m
}

func splitHHMM(hhmm string) (int, int, bool) {
	i := strings.IndexByte(hhmm, ':')
	if i < 0 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(hhmm[:i])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(hhmm[i+1:])
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}

// MatchContext classifies a requested time range against a doctor's active
// schedules. The request matches a schedule when the day entry for the
// request's day of week is available and one slot fully contains the range
// (reqStart >= slotStart and reqEnd <= slotEnd). A range that only partially
// overlaps a slot, or spans two adjacent slots, does not match.
//
// Schedules are tried in the order given; the first match wins. Times are
// compared as minutes since midnight with no timezone conversion.
func MatchContext(schedules []DoctorSchedule, date time.Time, startTime, endTime string) (Context, bool) {
	dow := int(date.Weekday())
	start := ToMinutes(startTime)
	end := ToMinutes(endTime)

	for _, sched := range schedules {
		day := sched.Week.Day(dow)
		if !day.Available {
			continue
		}

		for _, slot := range day.Slots {
			if start >= ToMinutes(slot.Start) && end <= ToMinutes(slot.End) {
				return sched.Context, true
			}
		}
	}

	return "", false
}
