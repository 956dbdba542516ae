package clinic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caredesk/clinic-platform/internal/staff"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const clinicColumns = `id, name, code, contact, address, timezone, specialties, settings, is_active, onboarding_completed_at, created_at, updated_at`

func scanClinic(row pgx.Row) (*Clinic, error) {
	var c Clinic
	var contact, address, settings []byte
	var completedAt *time.Time

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Code,
		&contact,
		&address,
		&c.Timezone,
		&c.Specialties,
		&settings,
		&c.Active,
		&completedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClinicNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(contact, &c.Contact); err != nil {
		return nil, fmt.Errorf("decode clinic contact: %w", err)
	}
	if err := json.Unmarshal(address, &c.Address); err != nil {
		return nil, fmt.Errorf("decode clinic address: %w", err)
	}
	if err := json.Unmarshal(settings, &c.Settings); err != nil {
		return nil, fmt.Errorf("decode clinic settings: %w", err)
	}
	c.OnboardingCompletedAt = completedAt
	return &c, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+clinicColumns+`
		FROM clinics
		WHERE id = $1
	`, id)
	return scanClinic(row)
}

func (r *PgRepository) GetByWhatsAppNumber(ctx context.Context, raw, normalized string) (*Clinic, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+clinicColumns+`
		FROM clinics
		WHERE is_active = true
		  AND (contact->>'whatsapp_number' = $1 OR contact->>'whatsapp_number' = $2)
		LIMIT 1
	`, raw, normalized)
	return scanClinic(row)
}

func scanTiming(row pgx.Row) (*Timing, error) {
	var t Timing
	var week []byte

	err := row.Scan(
		&t.ID,
		&t.ClinicID,
		&t.Timezone,
		&week,
		&t.Default,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTimingNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(week, &t.Week); err != nil {
		return nil, fmt.Errorf("decode clinic timing: %w", err)
	}
	return &t, nil
}

func (r *PgRepository) GetDefaultTiming(ctx context.Context, clinicID uuid.UUID) (*Timing, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, clinic_id, timezone, weekly_schedule, is_default, created_by, created_at, updated_at
		FROM clinic_timings
		WHERE clinic_id = $1 AND is_default = true
	`, clinicID)
	return scanTiming(row)
}

// Onboard runs the whole onboarding write path inside one transaction: the
// clinic row, the owner and default doctor users, the default timing, and
// the final dashboard activation. Duplicate clinic codes or staff emails
// roll everything back.
func (r *PgRepository) Onboard(ctx context.Context, c *Clinic, owner, doctor *staff.User, timing *Timing) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin onboarding tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertClinic(ctx, tx, c); err != nil {
		return err
	}

	owner.ClinicID = c.ID
	doctor.ClinicID = c.ID
	if err := insertUser(ctx, tx, owner); err != nil {
		return err
	}
	if err := insertUser(ctx, tx, doctor); err != nil {
		return err
	}

	timing.ClinicID = c.ID
	timing.CreatedBy = owner.ID
	if err := insertTiming(ctx, tx, timing); err != nil {
		return err
	}

	// Onboarding is complete; switch the dashboard on in the same commit.
	c.Settings.DashboardActive = true
	now := time.Now()
	c.OnboardingCompletedAt = &now

	settings, err := json.Marshal(c.Settings)
	if err != nil {
		return fmt.Errorf("encode clinic settings: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE clinics
		SET settings = $2,
		    onboarding_completed_at = $3,
		    updated_at = now()
		WHERE id = $1
	`, c.ID, settings, now); err != nil {
		return fmt.Errorf("finalize clinic onboarding: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit onboarding tx: %w", err)
	}
	return nil
}

func insertClinic(ctx context.Context, tx pgx.Tx, c *Clinic) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	contact, err := json.Marshal(c.Contact)
	if err != nil {
		return fmt.Errorf("encode clinic contact: %w", err)
	}
	address, err := json.Marshal(c.Address)
	if err != nil {
		return fmt.Errorf("encode clinic address: %w", err)
	}
	settings, err := json.Marshal(c.Settings)
	if err != nil {
		return fmt.Errorf("encode clinic settings: %w", err)
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO clinics (id, name, code, contact, address, timezone, specialties, settings, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true, now(), now())
		RETURNING created_at, updated_at
	`, c.ID, c.Name, c.Code, contact, address, c.Timezone, c.Specialties, settings)

	if err := row.Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrCodeTaken
		}
		return fmt.Errorf("insert clinic: %w", err)
	}
	c.Active = true
	return nil
}

func insertUser(ctx context.Context, tx pgx.Tx, u *staff.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	var profile []byte
	if u.DoctorProfile != nil {
		var err error
		profile, err = json.Marshal(u.DoctorProfile)
		if err != nil {
			return fmt.Errorf("encode doctor profile: %w", err)
		}
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO users (id, clinic_id, full_name, email, phone, password_hash, role, doctor_profile, permissions, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true, now(), now())
		RETURNING created_at, updated_at
	`, u.ID, u.ClinicID, u.FullName, u.Email, u.Phone, u.PasswordHash, u.Role, profile, u.Permissions)

	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return staff.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.Active = true
	return nil
}

func insertTiming(ctx context.Context, tx pgx.Tx, t *Timing) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	week, err := json.Marshal(t.Week)
	if err != nil {
		return fmt.Errorf("encode clinic timing: %w", err)
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO clinic_timings (id, clinic_id, timezone, weekly_schedule, is_default, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING created_at, updated_at
	`, t.ID, t.ClinicID, t.Timezone, week, t.Default, t.CreatedBy)

	if err := row.Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
		return fmt.Errorf("insert clinic timing: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
