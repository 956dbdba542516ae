package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateUserParams struct {
	ClinicID      uuid.UUID
	FullName      string
	Email         string
	Phone         string
	Password      string
	Role          Role
	DoctorProfile *DoctorProfile
	Permissions   []string
}

func (s *Service) CreateUser(ctx context.Context, p CreateUserParams) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ClinicID:      p.ClinicID,
		FullName:      p.FullName,
		Email:         p.Email,
		Phone:         p.Phone,
		PasswordHash:  string(hash),
		Role:          p.Role,
		DoctorProfile: p.DoctorProfile,
		Permissions:   p.Permissions,
		Active:        true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, clinicID, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, clinicID, id)
}

func (s *Service) ListDoctors(ctx context.Context, clinicID uuid.UUID) ([]User, error) {
	return s.repo.ListByClinic(ctx, clinicID, RoleDoctor)
}

// ActiveDoctorExists backs the schedule service's doctor check: the user must
// exist, belong to the clinic, hold the doctor role, and be active.
func (s *Service) ActiveDoctorExists(ctx context.Context, clinicID, doctorID uuid.UUID) (bool, error) {
	_, err := s.repo.GetActiveDoctor(ctx, clinicID, doctorID)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetActiveDoctor exposes the directory lookup for callers that also need the
// doctor's contact details (hospital booking alerts).
func (s *Service) GetActiveDoctor(ctx context.Context, clinicID, doctorID uuid.UUID) (*User, error) {
	return s.repo.GetActiveDoctor(ctx, clinicID, doctorID)
}
