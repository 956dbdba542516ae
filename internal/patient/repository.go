package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrCodeTaken       = errors.New("patient code already used in this clinic")
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, clinicID, id uuid.UUID) (*Patient, error)
	ListByClinic(ctx context.Context, clinicID uuid.UUID, limit, offset int) ([]Patient, error)
	Deactivate(ctx context.Context, clinicID, id uuid.UUID) error
}
