package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullWeek() []dayScheduleBody {
	weekly := make([]dayScheduleBody, 7)
	for i := range weekly {
		weekly[i] = dayScheduleBody{DayOfWeek: i}
	}
	weekly[1].IsAvailable = true
	weekly[1].Slots = []slotBody{{StartTime: "09:00", EndTime: "13:00"}}
	return weekly
}

func validUpsert() *UpsertScheduleRequest {
	return &UpsertScheduleRequest{
		DoctorID:     "8b0f7f74-1111-4a2b-9c3d-000000000001",
		ScheduleType: "clinic",
		LocationName: "Main Clinic",
		Timezone:     "Asia/Kolkata",
		Weekly:       fullWeek(),
	}
}

func TestValidateUpsertSchedule(t *testing.T) {
	assert.NoError(t, validateUpsertSchedule(validUpsert()))

	t.Run("bad schedule type", func(t *testing.T) {
		req := validUpsert()
		req.ScheduleType = "home"
		assert.Error(t, validateUpsertSchedule(req))
	})

	t.Run("short week", func(t *testing.T) {
		req := validUpsert()
		req.Weekly = req.Weekly[:6]
		assert.Error(t, validateUpsertSchedule(req))
	})

	t.Run("duplicate day", func(t *testing.T) {
		req := validUpsert()
		req.Weekly[2].DayOfWeek = 1
		assert.Error(t, validateUpsertSchedule(req))
	})

	t.Run("day out of range", func(t *testing.T) {
		req := validUpsert()
		req.Weekly[2].DayOfWeek = 7
		assert.Error(t, validateUpsertSchedule(req))
	})

	t.Run("malformed slot time", func(t *testing.T) {
		req := validUpsert()
		req.Weekly[1].Slots[0].StartTime = "9:00"
		assert.Error(t, validateUpsertSchedule(req))
	})

	t.Run("inverted slot", func(t *testing.T) {
		req := validUpsert()
		req.Weekly[1].Slots[0] = slotBody{StartTime: "13:00", EndTime: "09:00"}
		assert.Error(t, validateUpsertSchedule(req))
	})
}

func TestValidateBookAppointment(t *testing.T) {
	valid := func() *BookAppointmentRequest {
		return &BookAppointmentRequest{
			StartTime: "09:00",
			EndTime:   "09:30",
		}
	}

	assert.NoError(t, validateBookAppointment(valid()))

	t.Run("optional enums accepted", func(t *testing.T) {
		req := valid()
		req.Source = "whatsapp"
		req.Type = "follow_up"
		assert.NoError(t, validateBookAppointment(req))
	})

	t.Run("inverted range", func(t *testing.T) {
		req := valid()
		req.StartTime, req.EndTime = "10:00", "09:00"
		assert.Error(t, validateBookAppointment(req))
	})

	t.Run("zero length range", func(t *testing.T) {
		req := valid()
		req.EndTime = req.StartTime
		assert.Error(t, validateBookAppointment(req))
	})

	t.Run("bad source", func(t *testing.T) {
		req := valid()
		req.Source = "carrier-pigeon"
		assert.Error(t, validateBookAppointment(req))
	})

	t.Run("bad type", func(t *testing.T) {
		req := valid()
		req.Type = "checkup"
		assert.Error(t, validateBookAppointment(req))
	})

	t.Run("24h clock only", func(t *testing.T) {
		req := valid()
		req.StartTime = "24:00"
		assert.Error(t, validateBookAppointment(req))
	})
}

func TestValidateUpdateStatus(t *testing.T) {
	assert.NoError(t, validateUpdateStatus(&UpdateStatusRequest{Status: "waiting"}))
	assert.NoError(t, validateUpdateStatus(&UpdateStatusRequest{
		Status:             "cancelled",
		CancellationReason: "patient request",
	}))

	assert.Error(t, validateUpdateStatus(&UpdateStatusRequest{Status: "done"}))
	assert.Error(t, validateUpdateStatus(&UpdateStatusRequest{Status: "cancelled"}))
	assert.Error(t, validateUpdateStatus(&UpdateStatusRequest{
		Status:             "cancelled",
		CancellationReason: "  x ",
	}))
}

func TestValidateRegisterPatient(t *testing.T) {
	valid := func() *RegisterPatientRequest {
		return &RegisterPatientRequest{
			FullName: "Ravi Kumar",
			Gender:   "male",
			Phone:    "+919876543210",
		}
	}

	assert.NoError(t, validateRegisterPatient(valid()))

	t.Run("missing name", func(t *testing.T) {
		req := valid()
		req.FullName = "  "
		assert.Error(t, validateRegisterPatient(req))
	})

	t.Run("bad gender", func(t *testing.T) {
		req := valid()
		req.Gender = "unknown"
		assert.Error(t, validateRegisterPatient(req))
	})

	t.Run("missing phone", func(t *testing.T) {
		req := valid()
		req.Phone = ""
		assert.Error(t, validateRegisterPatient(req))
	})
}

func TestValidateOnboardClinic(t *testing.T) {
	valid := func() *OnboardClinicRequest {
		var req OnboardClinicRequest
		req.Clinic.Name = "Sunrise Clinic"
		req.Clinic.Code = "SUN01"
		req.Clinic.ContactPhone = "+911234567890"
		req.Clinic.Timezone = "Asia/Kolkata"
		req.Owner.FullName = "Asha Rao"
		req.Owner.Email = "asha@example.com"
		req.Owner.Password = "super-secret-1"
		req.DefaultDoctor.FullName = "Dr. Mehta"
		req.DefaultDoctor.Email = "mehta@example.com"
		req.Timings.Weekly = make([]dayTimingBody, 7)
		for i := range req.Timings.Weekly {
			req.Timings.Weekly[i] = dayTimingBody{DayOfWeek: i}
		}
		return &req
	}

	assert.NoError(t, validateOnboardClinic(valid()))

	t.Run("short password", func(t *testing.T) {
		req := valid()
		req.Owner.Password = "short"
		assert.Error(t, validateOnboardClinic(req))
	})

	t.Run("missing clinic code", func(t *testing.T) {
		req := valid()
		req.Clinic.Code = ""
		assert.Error(t, validateOnboardClinic(req))
	})

	t.Run("wrong timing length", func(t *testing.T) {
		req := valid()
		req.Timings.Weekly = req.Timings.Weekly[:5]
		assert.Error(t, validateOnboardClinic(req))
	})

	t.Run("bad timing slot", func(t *testing.T) {
		req := valid()
		req.Timings.Weekly[1].Slots = []slotBody{{StartTime: "09:00", EndTime: "08:00"}}
		assert.Error(t, validateOnboardClinic(req))
	})
}
