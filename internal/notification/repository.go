package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Repository interface {
	Create(ctx context.Context, n *Notification) error

	// NextQueued returns up to limit queued rows, oldest first. The
	// notify worker is a single process; rows stay queued until the
	// publish outcome is recorded.
	NextQueued(ctx context.Context, limit int) ([]Notification, error)

	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error

	ListByClinic(ctx context.Context, clinicID uuid.UUID, status Status, limit int) ([]Notification, error)
}
