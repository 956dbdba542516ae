package clinic

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/caredesk/clinic-platform/internal/staff"
)

var (
	ErrClinicNotFound  = errors.New("clinic not found")
	ErrTimingNotFound  = errors.New("clinic timing not found")
	ErrCodeTaken       = errors.New("clinic code already exists")
	ErrOwnerEmailTaken = errors.New("clinic owner email already registered for this clinic")
)

// Repository contains all DB interactions needed by the clinic service.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Clinic, error)

	// GetByWhatsAppNumber resolves an active clinic from the inbound
	// WhatsApp number, matching either the raw or digit-normalized form.
	GetByWhatsAppNumber(ctx context.Context, raw, normalized string) (*Clinic, error)

	GetDefaultTiming(ctx context.Context, clinicID uuid.UUID) (*Timing, error)

	// Onboard creates clinic, owner, default doctor, and default timing in
	// one transaction. Either everything commits or nothing does.
	Onboard(ctx context.Context, c *Clinic, owner, doctor *staff.User, timing *Timing) error
}
