package api

import (
	"fmt"
	"regexp"
	"strings"
)

// The core services trust their inputs; everything below guards the boundary.

var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

func validHHMM(v string) bool {
	return hhmmRe.MatchString(v)
}

func validateUpsertSchedule(req *UpsertScheduleRequest) error {
	if req.ScheduleType != "clinic" && req.ScheduleType != "hospital" {
		return fmt.Errorf("schedule_type must be clinic or hospital")
	}
	if len(strings.TrimSpace(req.LocationName)) < 2 {
		return fmt.Errorf("location_name is required")
	}
	if strings.TrimSpace(req.Timezone) == "" {
		return fmt.Errorf("timezone is required")
	}
	return validateWeeklySchedule(req.Weekly)
}

func validateWeeklySchedule(weekly []dayScheduleBody) error {
	if len(weekly) != 7 {
		return fmt.Errorf("weekly_schedule must contain 7 day entries")
	}

	seen := [7]bool{}
	for _, day := range weekly {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return fmt.Errorf("day_of_week must be between 0 and 6")
		}
		if seen[day.DayOfWeek] {
			return fmt.Errorf("duplicate entry for day_of_week %d", day.DayOfWeek)
		}
		seen[day.DayOfWeek] = true

		for _, slot := range day.Slots {
			if !validHHMM(slot.StartTime) || !validHHMM(slot.EndTime) {
				return fmt.Errorf("slot start_time and end_time must be in HH:MM format")
			}
			if slot.StartTime >= slot.EndTime {
				return fmt.Errorf("slot start_time must be less than end_time")
			}
		}
	}
	return nil
}

func validateBookAppointment(req *BookAppointmentRequest) error {
	if !validHHMM(req.StartTime) || !validHHMM(req.EndTime) {
		return fmt.Errorf("start_time and end_time must be valid HH:MM strings")
	}
	if req.StartTime >= req.EndTime {
		return fmt.Errorf("start_time must be less than end_time")
	}
	if req.Source != "" {
		switch req.Source {
		case "walkin", "phone", "whatsapp", "web", "staff":
		default:
			return fmt.Errorf("source is invalid")
		}
	}
	if req.Type != "" {
		switch req.Type {
		case "new", "follow_up", "emergency":
		default:
			return fmt.Errorf("type is invalid")
		}
	}
	if len(req.Reason) > 500 {
		return fmt.Errorf("reason exceeds max length 500")
	}
	return nil
}

func validateUpdateStatus(req *UpdateStatusRequest) error {
	switch req.Status {
	case "booked", "waiting", "completed", "cancelled":
	default:
		return fmt.Errorf("status must be one of booked, waiting, completed, cancelled")
	}
	if req.Status == "cancelled" && len(strings.TrimSpace(req.CancellationReason)) < 3 {
		return fmt.Errorf("cancellation_reason is required when status is cancelled")
	}
	return nil
}

func validateOnboardClinic(req *OnboardClinicRequest) error {
	if strings.TrimSpace(req.Clinic.Name) == "" {
		return fmt.Errorf("clinic.name is required")
	}
	if len(strings.TrimSpace(req.Clinic.Code)) < 2 {
		return fmt.Errorf("clinic.code is required")
	}
	if strings.TrimSpace(req.Clinic.ContactPhone) == "" {
		return fmt.Errorf("clinic.contact_phone is required")
	}
	if strings.TrimSpace(req.Clinic.Timezone) == "" {
		return fmt.Errorf("clinic.timezone is required")
	}
	if strings.TrimSpace(req.Owner.FullName) == "" || strings.TrimSpace(req.Owner.Email) == "" {
		return fmt.Errorf("owner full_name and email are required")
	}
	if len(req.Owner.Password) < 8 {
		return fmt.Errorf("owner password must be at least 8 characters")
	}
	if strings.TrimSpace(req.DefaultDoctor.FullName) == "" || strings.TrimSpace(req.DefaultDoctor.Email) == "" {
		return fmt.Errorf("default_doctor full_name and email are required")
	}
	if len(req.Timings.Weekly) != 7 {
		return fmt.Errorf("timings.weekly_schedule must contain 7 day entries")
	}
	for _, day := range req.Timings.Weekly {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return fmt.Errorf("timings day_of_week must be between 0 and 6")
		}
		for _, slot := range day.Slots {
			if !validHHMM(slot.StartTime) || !validHHMM(slot.EndTime) || slot.StartTime >= slot.EndTime {
				return fmt.Errorf("timings slots must be valid HH:MM ranges")
			}
		}
	}
	return nil
}

func validateCreateStaff(req *CreateStaffRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return fmt.Errorf("full_name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if len(req.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if req.Role != "doctor" && req.Role != "receptionist" {
		return fmt.Errorf("role must be doctor or receptionist")
	}
	return nil
}

func validateRegisterPatient(req *RegisterPatientRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return fmt.Errorf("full_name is required")
	}
	switch req.Gender {
	case "male", "female", "other":
	default:
		return fmt.Errorf("gender must be male, female, or other")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("phone is required")
	}
	return nil
}
