package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/caredesk/clinic-platform/internal/redisclient"
	"github.com/caredesk/clinic-platform/internal/schedule"
)

type Service struct {
	repo      Repository
	schedules ScheduleFinder
	notifier  Notifier
	locker    redisclient.BookingLocker
	log       zerolog.Logger
}

func NewService(repo Repository, schedules ScheduleFinder, notifier Notifier, locker redisclient.BookingLocker, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		schedules: schedules,
		notifier:  notifier,
		locker:    locker,
		log:       log,
	}
}

type BookParams struct {
	ClinicID  uuid.UUID
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	BookedBy  *uuid.UUID
	Date      time.Time
	StartTime string
	EndTime   string
	Source    Source
	Reason    string
	Type      Type
}

// Book is the sole entry point for creating appointments. It resolves the
// booking context from the doctor's schedules, rejects overlapping requests,
// and persists the appointment. The whole check-then-insert section runs
// under a per-(clinic, doctor, date) lock so two concurrent requests cannot
// both pass the conflict check.
func (s *Service) Book(ctx context.Context, p BookParams) (*Appointment, error) {
	date := truncateToDate(p.Date)

	var created *Appointment

	err := s.locker.WithBookingLock(ctx, p.ClinicID, p.DoctorID, date.Format("2006-01-02"), func(lockCtx context.Context) error {
		schedules, err := s.schedules.FindActiveSchedules(lockCtx, p.ClinicID, p.DoctorID)
		if err != nil {
			return fmt.Errorf("load doctor schedules: %w", err)
		}

		scheduleCtx, ok := schedule.MatchContext(schedules, date, p.StartTime, p.EndTime)
		if !ok {
			return ErrSlotOutsideSchedule
		}

		existing, err := s.repo.ListActiveForDoctorDate(lockCtx, p.ClinicID, p.DoctorID, date)
		if err != nil {
			return fmt.Errorf("load existing appointments: %w", err)
		}
		if HasConflict(existing, p.StartTime, p.EndTime) {
			return ErrSlotTaken
		}

		source := p.Source
		if source == "" {
			source = SourceStaff
		}
		apptType := p.Type
		if apptType == "" {
			apptType = TypeNew
		}

		appt := &Appointment{
			ClinicID:       p.ClinicID,
			PatientID:      p.PatientID,
			DoctorID:       p.DoctorID,
			BookedBy:       p.BookedBy,
			Source:         source,
			Date:           date,
			StartTime:      p.StartTime,
			EndTime:        p.EndTime,
			Type:           apptType,
			Status:         StatusBooked,
			BookingContext: resolveBookingContext(scheduleCtx),
			Reason:         p.Reason,
		}

		if err := s.repo.Create(lockCtx, appt); err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}

		created = appt
		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrBookingInProgress
		}
		return nil, err
	}

	// Fire-and-forget: the booking is committed, an alert failure only logs.
	if created.BookingContext == BookingHospitalTime {
		if err := s.notifier.HospitalBookingAlert(ctx, created); err != nil {
			s.log.Error().Err(err).
				Str("appointment_id", created.ID.String()).
				Msg("failed to enqueue hospital booking alert")
		}
	}

	return created, nil
}

func resolveBookingContext(sc schedule.Context) BookingContext {
	if sc == schedule.ContextHospital {
		return BookingHospitalTime
	}
	return BookingClinicTime
}

// UpdateStatus moves an appointment through its lifecycle. Transitions are
// restricted to booked -> waiting/completed/cancelled and waiting ->
// completed/cancelled; completed and cancelled are terminal.
func (s *Service) UpdateStatus(ctx context.Context, clinicID, appointmentID uuid.UUID, next Status, cancellationReason string) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, clinicID, appointmentID)
	if err != nil {
		return nil, err
	}

	if !appt.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, next)
	}

	appt.Status = next
	if next == StatusCancelled {
		if cancellationReason == "" {
			return nil, ErrCancelReasonRequired
		}
		appt.CancellationReason = cancellationReason
	}

	if err := s.repo.UpdateStatus(ctx, appt); err != nil {
		return nil, fmt.Errorf("update appointment status: %w", err)
	}
	return appt, nil
}

func (s *Service) GetAppointment(ctx context.Context, clinicID, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, clinicID, id)
}

func (s *Service) ListForClinicDate(ctx context.Context, clinicID uuid.UUID, date time.Time) ([]Appointment, error) {
	return s.repo.ListForClinicDate(ctx, clinicID, truncateToDate(date))
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
