package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const notificationColumns = `id, clinic_id, user_id, patient_id, appointment_id, type, channel, recipient, template_code, payload, status, failure_reason, sent_at, created_at, updated_at`

func scanNotification(row pgx.Row) (*Notification, error) {
	var n Notification
	var payload []byte
	var templateCode, failureReason *string
	var sentAt *time.Time

	err := row.Scan(
		&n.ID,
		&n.ClinicID,
		&n.UserID,
		&n.PatientID,
		&n.AppointmentID,
		&n.Type,
		&n.Channel,
		&n.Recipient,
		&templateCode,
		&payload,
		&n.Status,
		&failureReason,
		&sentAt,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	if templateCode != nil {
		n.TemplateCode = *templateCode
	}
	if failureReason != nil {
		n.FailureReason = *failureReason
	}
	n.SentAt = sentAt

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &n.Payload); err != nil {
			return nil, fmt.Errorf("decode notification payload: %w", err)
		}
	}
	return &n, nil
}

func (r *PgRepository) Create(ctx context.Context, n *Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Status == "" {
		n.Status = StatusQueued
	}

	payload, err := json.Marshal(n.Payload)
	if err != nil {
		return fmt.Errorf("encode notification payload: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO notifications
			(id, clinic_id, user_id, patient_id, appointment_id, type, channel, recipient, template_code, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, now(), now())
		RETURNING created_at, updated_at
	`, n.ID, n.ClinicID, n.UserID, n.PatientID, n.AppointmentID, n.Type, n.Channel, n.Recipient, n.TemplateCode, payload, n.Status)

	if err := row.Scan(&n.CreatedAt, &n.UpdatedAt); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *PgRepository) NextQueued(ctx context.Context, limit int) ([]Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE status = 'queued'
		ORDER BY created_at
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications
		SET status = 'sent',
		    sent_at = now(),
		    updated_at = now()
		WHERE id = $1 AND status = 'queued'
	`, id)
	if err != nil {
		return fmt.Errorf("mark notification sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *PgRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications
		SET status = 'failed',
		    failure_reason = $2,
		    updated_at = now()
		WHERE id = $1 AND status = 'queued'
	`, id, reason)
	if err != nil {
		return fmt.Errorf("mark notification failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *PgRepository) ListByClinic(ctx context.Context, clinicID uuid.UUID, status Status, limit int) ([]Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE clinic_id = $1
	`
	args := []any{clinicID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
