package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo    Repository
	doctors DoctorDirectory
}

func NewService(repo Repository, doctors DoctorDirectory) *Service {
	return &Service{repo: repo, doctors: doctors}
}

type UpsertParams struct {
	ClinicID     uuid.UUID
	DoctorID     uuid.UUID
	Context      Context
	LocationName string
	Timezone     string
	Week         WeekSchedule
	ActorUserID  uuid.UUID
}

// UpsertSchedule creates or replaces a doctor's weekly availability for one
// context. The same (clinic, doctor, context) key always resolves to a
// single stored row, so repeated calls are idempotent.
func (s *Service) UpsertSchedule(ctx context.Context, p UpsertParams) (*DoctorSchedule, error) {
	ok, err := s.doctors.ActiveDoctorExists(ctx, p.ClinicID, p.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("check doctor: %w", err)
	}
	if !ok {
		return nil, ErrDoctorNotFound
	}

	week := p.Week
	week.Normalize()

	actor := p.ActorUserID
	sched := &DoctorSchedule{
		ClinicID:     p.ClinicID,
		DoctorID:     p.DoctorID,
		Context:      p.Context,
		LocationName: p.LocationName,
		Timezone:     p.Timezone,
		Week:         week,
		UpdatedBy:    &actor,
	}

	if err := s.repo.Upsert(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

// FindActiveSchedules returns the doctor's active contexts in store order.
func (s *Service) FindActiveSchedules(ctx context.Context, clinicID, doctorID uuid.UUID) ([]DoctorSchedule, error) {
	return s.repo.FindActive(ctx, clinicID, doctorID)
}

// DeactivateSchedule soft-deletes one context. Historical rows are kept.
func (s *Service) DeactivateSchedule(ctx context.Context, clinicID, doctorID uuid.UUID, sc Context) error {
	return s.repo.Deactivate(ctx, clinicID, doctorID, sc)
}
