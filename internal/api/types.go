package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/caredesk/clinic-platform/internal/appointment"
	"github.com/caredesk/clinic-platform/internal/clinic"
	"github.com/caredesk/clinic-platform/internal/notification"
	"github.com/caredesk/clinic-platform/internal/patient"
	"github.com/caredesk/clinic-platform/internal/schedule"
	"github.com/caredesk/clinic-platform/internal/staff"
)

// -- Schedules --

type slotBody struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type dayScheduleBody struct {
	DayOfWeek   int        `json:"day_of_week"`
	IsAvailable bool       `json:"is_available"`
	Slots       []slotBody `json:"slots"`
}

type UpsertScheduleRequest struct {
	DoctorID     string            `json:"doctor_id"`
	ScheduleType string            `json:"schedule_type"` // clinic or hospital
	LocationName string            `json:"location_name"`
	Timezone     string            `json:"timezone"`
	Weekly       []dayScheduleBody `json:"weekly_schedule"`
}

type ScheduleResponse struct {
	ID           uuid.UUID              `json:"id"`
	DoctorID     uuid.UUID              `json:"doctor_id"`
	ScheduleType schedule.Context       `json:"schedule_type"`
	LocationName string                 `json:"location_name"`
	Timezone     string                 `json:"timezone"`
	Weekly       schedule.WeekSchedule  `json:"weekly_schedule"`
	Active       bool                   `json:"is_active"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func toScheduleResponse(s *schedule.DoctorSchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:           s.ID,
		DoctorID:     s.DoctorID,
		ScheduleType: s.Context,
		LocationName: s.LocationName,
		Timezone:     s.Timezone,
		Weekly:       s.Week,
		Active:       s.Active,
		UpdatedAt:    s.UpdatedAt,
	}
}

// -- Appointments --

type BookAppointmentRequest struct {
	DoctorID        string `json:"doctor_id"`
	PatientID       string `json:"patient_id"`
	AppointmentDate string `json:"appointment_date"` // YYYY-MM-DD
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Source          string `json:"source,omitempty"`
	Reason          string `json:"reason,omitempty"`
	Type            string `json:"type,omitempty"`
}

type UpdateStatusRequest struct {
	Status             string `json:"status"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
}

type AppointmentResponse struct {
	ID                 uuid.UUID                  `json:"id"`
	DoctorID           uuid.UUID                  `json:"doctor_id"`
	PatientID          uuid.UUID                  `json:"patient_id"`
	BookedBy           *uuid.UUID                 `json:"booked_by,omitempty"`
	Source             appointment.Source         `json:"source"`
	AppointmentDate    string                     `json:"appointment_date"`
	StartTime          string                     `json:"start_time"`
	EndTime            string                     `json:"end_time"`
	Type               appointment.Type           `json:"type"`
	Status             appointment.Status         `json:"status"`
	BookingContext     appointment.BookingContext `json:"booking_context"`
	Reason             string                     `json:"reason,omitempty"`
	CancellationReason string                     `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time                  `json:"created_at"`
}

func toAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:                 a.ID,
		DoctorID:           a.DoctorID,
		PatientID:          a.PatientID,
		BookedBy:           a.BookedBy,
		Source:             a.Source,
		AppointmentDate:    a.Date.Format("2006-01-02"),
		StartTime:          a.StartTime,
		EndTime:            a.EndTime,
		Type:               a.Type,
		Status:             a.Status,
		BookingContext:     a.BookingContext,
		Reason:             a.Reason,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
	}
}

// -- Onboarding --

type addressBody struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country,omitempty"`
	Pincode string `json:"pincode"`
}

type dayTimingBody struct {
	DayOfWeek int        `json:"day_of_week"`
	IsOpen    bool       `json:"is_open"`
	Slots     []slotBody `json:"slots"`
}

type OnboardClinicRequest struct {
	Clinic struct {
		Name           string      `json:"name"`
		Code           string      `json:"code"`
		ContactPhone   string      `json:"contact_phone"`
		ContactEmail   string      `json:"contact_email,omitempty"`
		WhatsAppNumber string      `json:"whatsapp_number,omitempty"`
		Address        addressBody `json:"address"`
		Timezone       string      `json:"timezone"`
		Specialties    []string    `json:"specialties,omitempty"`
	} `json:"clinic"`
	Owner struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	} `json:"owner"`
	DefaultDoctor struct {
		FullName           string  `json:"full_name"`
		Email              string  `json:"email"`
		Phone              string  `json:"phone"`
		RegistrationNumber string  `json:"registration_number,omitempty"`
		Specialization     string  `json:"specialization,omitempty"`
		Qualification      string  `json:"qualification,omitempty"`
		ConsultationFee    float64 `json:"consultation_fee,omitempty"`
	} `json:"default_doctor"`
	Timings struct {
		Timezone string          `json:"timezone"`
		Weekly   []dayTimingBody `json:"weekly_schedule"`
	} `json:"timings"`
}

type OnboardClinicResponse struct {
	ClinicID        uuid.UUID `json:"clinic_id"`
	Code            string    `json:"code"`
	OwnerID         uuid.UUID `json:"owner_id"`
	DefaultDoctorID uuid.UUID `json:"default_doctor_id"`
	DashboardActive bool      `json:"dashboard_active"`
	CompletedAt     time.Time `json:"onboarding_completed_at"`
}

// -- Patients --

type RegisterPatientRequest struct {
	Code           string   `json:"patient_code,omitempty"`
	FullName       string   `json:"full_name"`
	Gender         string   `json:"gender"`
	DateOfBirth    string   `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	BloodGroup     string   `json:"blood_group,omitempty"`
	Phone          string   `json:"phone"`
	WhatsAppNumber string   `json:"whatsapp_number,omitempty"`
	Email          string   `json:"email,omitempty"`
	Allergies      []string `json:"allergies,omitempty"`
}

type PatientResponse struct {
	ID       uuid.UUID      `json:"id"`
	Code     string         `json:"patient_code"`
	FullName string         `json:"full_name"`
	Gender   patient.Gender `json:"gender"`
	Phone    string         `json:"phone"`
	Active   bool           `json:"is_active"`
}

func toPatientResponse(p *patient.Patient) PatientResponse {
	return PatientResponse{
		ID:       p.ID,
		Code:     p.Code,
		FullName: p.FullName,
		Gender:   p.Gender,
		Phone:    p.Phone,
		Active:   p.Active,
	}
}

type ClinicResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Code            string    `json:"code"`
	Timezone        string    `json:"timezone"`
	Specialties     []string  `json:"specialties,omitempty"`
	WhatsAppNumber  string    `json:"whatsapp_number,omitempty"`
	DashboardActive bool      `json:"dashboard_active"`
	Active          bool      `json:"is_active"`
}

func toClinicResponse(c *clinic.Clinic) ClinicResponse {
	return ClinicResponse{
		ID:              c.ID,
		Name:            c.Name,
		Code:            c.Code,
		Timezone:        c.Timezone,
		Specialties:     c.Specialties,
		WhatsAppNumber:  c.Contact.WhatsAppNumber,
		DashboardActive: c.Settings.DashboardActive,
		Active:          c.Active,
	}
}

// -- Staff --

type CreateStaffRequest struct {
	FullName           string   `json:"full_name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone,omitempty"`
	Password           string   `json:"password"`
	Role               string   `json:"role"` // doctor or receptionist
	Permissions        []string `json:"permissions,omitempty"`
	RegistrationNumber string   `json:"registration_number,omitempty"`
	Specialization     string   `json:"specialization,omitempty"`
	Qualification      string   `json:"qualification,omitempty"`
	ConsultationFee    float64  `json:"consultation_fee,omitempty"`
}

type StaffResponse struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Specialization string    `json:"specialization,omitempty"`
	Active         bool      `json:"is_active"`
}

func toStaffResponse(u *staff.User) StaffResponse {
	resp := StaffResponse{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     string(u.Role),
		Active:   u.Active,
	}
	if u.DoctorProfile != nil {
		resp.Specialization = u.DoctorProfile.Specialization
	}
	return resp
}

// -- WhatsApp webhook --

type WhatsAppWebhookRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

type WhatsAppWebhookResponse struct {
	Status        string `json:"status"`
	AppointmentID string `json:"appointment_id,omitempty"`
	Reply         string `json:"reply,omitempty"`
}

// -- Notifications --

type NotificationResponse struct {
	ID        uuid.UUID            `json:"id"`
	Type      notification.Type    `json:"type"`
	Channel   notification.Channel `json:"channel"`
	Recipient string               `json:"recipient"`
	Status    notification.Status  `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}
