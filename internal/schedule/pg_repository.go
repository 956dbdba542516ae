package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

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

func scanSchedule(row pgx.Row) (*DoctorSchedule, error) {
	var s DoctorSchedule
	var week []byte

	err := row.Scan(
		&s.ID,
		&s.ClinicID,
		&s.DoctorID,
		&s.Context,
		&s.LocationName,
		&s.Timezone,
		&week,
		&s.Active,
		&s.CreatedBy,
		&s.UpdatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(week, &s.Week); err != nil {
		return nil, fmt.Errorf("decode weekly schedule: %w", err)
	}
	return &s, nil
}

func (r *PgRepository) Upsert(ctx context.Context, s *DoctorSchedule) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	week, err := json.Marshal(s.Week)
	if err != nil {
		return fmt.Errorf("encode weekly schedule: %w", err)
	}

	// ON CONFLICT keeps the original row id and creator; everything else is
	// replaced and the row forced active.
	row := r.pool.QueryRow(ctx, `
		INSERT INTO doctor_schedules
			(id, clinic_id, doctor_id, schedule_type, location_name, timezone, weekly_schedule, is_active, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true, $8, $8, now(), now())
		ON CONFLICT (clinic_id, doctor_id, schedule_type) DO UPDATE SET
			location_name   = EXCLUDED.location_name,
			timezone        = EXCLUDED.timezone,
			weekly_schedule = EXCLUDED.weekly_schedule,
			is_active       = true,
			updated_by      = EXCLUDED.updated_by,
			updated_at      = now()
		RETURNING id, created_by, created_at, updated_at
	`, s.ID, s.ClinicID, s.DoctorID, s.Context, s.LocationName, s.Timezone, week, s.UpdatedBy)

	if err := row.Scan(&s.ID, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("upsert doctor schedule: %w", err)
	}

	s.Active = true
	return nil
}

func (r *PgRepository) FindActive(ctx context.Context, clinicID, doctorID uuid.UUID) ([]DoctorSchedule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, clinic_id, doctor_id, schedule_type, location_name, timezone, weekly_schedule, is_active, created_by, updated_by, created_at, updated_at
		FROM doctor_schedules
		WHERE clinic_id = $1 AND doctor_id = $2 AND is_active = true
		ORDER BY schedule_type
	`, clinicID, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DoctorSchedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) Deactivate(ctx context.Context, clinicID, doctorID uuid.UUID, sc Context) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE doctor_schedules
		SET is_active = false,
		    updated_at = now()
		WHERE clinic_id = $1 AND doctor_id = $2 AND schedule_type = $3 AND is_active = true
	`, clinicID, doctorID, sc)
	if err != nil {
		return fmt.Errorf("deactivate doctor schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrScheduleNotFound
	}
	return nil
}
