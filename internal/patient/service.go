package patient

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RegisterParams struct {
	ClinicID         uuid.UUID
	Code             string
	FullName         string
	Gender           Gender
	DateOfBirth      *time.Time
	BloodGroup       string
	Phone            string
	WhatsAppNumber   string
	Email            string
	Address          Address
	Allergies        []string
	ChronicCondition []string
	EmergencyContact *EmergencyContact
	ReferredBy       string
}

// Register creates a patient record. A code is generated when the caller
// does not supply one.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*Patient, error) {
	code := strings.TrimSpace(p.Code)
	if code == "" {
		code = "PAT-" + strings.ToUpper(uuid.NewString()[:8])
	}

	pt := &Patient{
		ClinicID:          p.ClinicID,
		Code:              code,
		FullName:          p.FullName,
		Gender:            p.Gender,
		DateOfBirth:       p.DateOfBirth,
		BloodGroup:        p.BloodGroup,
		Phone:             p.Phone,
		WhatsAppNumber:    p.WhatsAppNumber,
		Email:             p.Email,
		Address:           p.Address,
		Allergies:         p.Allergies,
		ChronicConditions: p.ChronicCondition,
		EmergencyContact:  p.EmergencyContact,
		ReferredBy:        p.ReferredBy,
	}

	if err := s.repo.Create(ctx, pt); err != nil {
		return nil, err
	}
	return pt, nil
}

func (s *Service) GetPatient(ctx context.Context, clinicID, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, clinicID, id)
}

func (s *Service) ListPatients(ctx context.Context, clinicID uuid.UUID, limit, offset int) ([]Patient, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByClinic(ctx, clinicID, limit, offset)
}

func (s *Service) DeactivatePatient(ctx context.Context, clinicID, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, clinicID, id)
}
