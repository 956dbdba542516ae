package staff

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
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const userColumns = `id, clinic_id, full_name, email, phone, password_hash, role, doctor_profile, permissions, is_active, last_login_at, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var profile []byte
	var lastLogin *time.Time

	err := row.Scan(
		&u.ID,
		&u.ClinicID,
		&u.FullName,
		&u.Email,
		&u.Phone,
		&u.PasswordHash,
		&u.Role,
		&profile,
		&u.Permissions,
		&u.Active,
		&lastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if len(profile) > 0 {
		var dp DoctorProfile
		if err := json.Unmarshal(profile, &dp); err != nil {
			return nil, fmt.Errorf("decode doctor profile: %w", err)
		}
		u.DoctorProfile = &dp
	}
	u.LastLoginAt = lastLogin
	return &u, nil
}

func (r *PgRepository) GetByID(ctx context.Context, clinicID, id uuid.UUID) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1 AND clinic_id = $2
	`, id, clinicID)
	return scanUser(row)
}

func (r *PgRepository) GetActiveDoctor(ctx context.Context, clinicID, doctorID uuid.UUID) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1 AND clinic_id = $2 AND role = $3 AND is_active = true
	`, doctorID, clinicID, RoleDoctor)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *PgRepository) Create(ctx context.Context, u *User) error {
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

	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, clinic_id, full_name, email, phone, password_hash, role, doctor_profile, permissions, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		RETURNING created_at, updated_at
	`, u.ID, u.ClinicID, u.FullName, u.Email, u.Phone, u.PasswordHash, u.Role, profile, u.Permissions, u.Active)

	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PgRepository) ListByClinic(ctx context.Context, clinicID uuid.UUID, role Role) ([]User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE clinic_id = $1 AND is_active = true
	`
	args := []any{clinicID}
	if role != "" {
		query += ` AND role = $2`
		args = append(args, role)
	}
	query += ` ORDER BY full_name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
