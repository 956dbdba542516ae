package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/caredesk/clinic-platform/internal/appointment"
	"github.com/caredesk/clinic-platform/internal/staff"
)

// DoctorLookup resolves the alert recipient's contact details.
type DoctorLookup interface {
	GetActiveDoctor(ctx context.Context, clinicID, doctorID uuid.UUID) (*staff.User, error)
}

type Service struct {
	repo    Repository
	doctors DoctorLookup
}

func NewService(repo Repository, doctors DoctorLookup) *Service {
	return &Service{repo: repo, doctors: doctors}
}

// Enqueue writes one outbox row with status queued.
func (s *Service) Enqueue(ctx context.Context, n *Notification) error {
	n.Status = StatusQueued
	return s.repo.Create(ctx, n)
}

// HospitalBookingAlert queues an in-app alert to the doctor whose hospital
// time just received a booking. Satisfies appointment.Notifier.
func (s *Service) HospitalBookingAlert(ctx context.Context, appt *appointment.Appointment) error {
	recipient := "doctor"
	if doctor, err := s.doctors.GetActiveDoctor(ctx, appt.ClinicID, appt.DoctorID); err == nil {
		switch {
		case doctor.Email != "":
			recipient = doctor.Email
		case doctor.Phone != "":
			recipient = doctor.Phone
		default:
			recipient = doctor.FullName
		}
	}

	doctorID := appt.DoctorID
	patientID := appt.PatientID
	apptID := appt.ID

	n := &Notification{
		ClinicID:      appt.ClinicID,
		UserID:        &doctorID,
		PatientID:     &patientID,
		AppointmentID: &apptID,
		Type:          TypeHospitalBookingAlert,
		Channel:       ChannelInApp,
		Recipient:     recipient,
		Payload: map[string]any{
			"message":          "A patient booked an appointment during your hospital time",
			"appointment_id":   appt.ID.String(),
			"appointment_date": appt.Date.Format("2006-01-02"),
			"start_time":       appt.StartTime,
			"end_time":         appt.EndTime,
		},
	}

	if err := s.Enqueue(ctx, n); err != nil {
		return fmt.Errorf("enqueue hospital booking alert: %w", err)
	}
	return nil
}

func (s *Service) ListByClinic(ctx context.Context, clinicID uuid.UUID, status Status, limit int) ([]Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByClinic(ctx, clinicID, status, limit)
}
