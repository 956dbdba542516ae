package appointment

import (
	"context"
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

const apptColumns = `id, clinic_id, patient_id, doctor_id, booked_by, source, appointment_date, start_time, end_time, type, status, booking_context, reason, notes, cancellation_reason, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var bookedBy *uuid.UUID
	var reason, notes, cancelReason *string

	err := row.Scan(
		&a.ID,
		&a.ClinicID,
		&a.PatientID,
		&a.DoctorID,
		&bookedBy,
		&a.Source,
		&a.Date,
		&a.StartTime,
		&a.EndTime,
		&a.Type,
		&a.Status,
		&a.BookingContext,
		&reason,
		&notes,
		&cancelReason,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	a.BookedBy = bookedBy
	a.Reason = strVal(reason)
	a.Notes = strVal(notes)
	a.CancellationReason = strVal(cancelReason)
	return &a, nil
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (r *PgRepository) ListActiveForDoctorDate(ctx context.Context, clinicID, doctorID uuid.UUID, date time.Time) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptColumns+`
		FROM appointments
		WHERE clinic_id = $1
		  AND doctor_id = $2
		  AND appointment_date = $3
		  AND status IN ('booked', 'waiting')
		ORDER BY start_time
	`, clinicID, doctorID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *PgRepository) ListForClinicDate(ctx context.Context, clinicID uuid.UUID, date time.Time) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptColumns+`
		FROM appointments
		WHERE clinic_id = $1
		  AND appointment_date = $2
		ORDER BY start_time
	`, clinicID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func collectAppointments(rows pgx.Rows) ([]Appointment, error) {
	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) Create(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments
			(id, clinic_id, patient_id, doctor_id, booked_by, source, appointment_date, start_time, end_time, type, status, booking_context, reason, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())
		RETURNING created_at, updated_at
	`, a.ID, a.ClinicID, a.PatientID, a.DoctorID, a.BookedBy, a.Source, a.Date, a.StartTime, a.EndTime, a.Type, a.Status, a.BookingContext, a.Reason, a.Notes)

	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *PgRepository) GetByID(ctx context.Context, clinicID, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+apptColumns+`
		FROM appointments
		WHERE id = $1 AND clinic_id = $2
	`, id, clinicID)
	return scanAppointment(row)
}

func (r *PgRepository) UpdateStatus(ctx context.Context, a *Appointment) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET status = $3,
		    cancellation_reason = NULLIF($4, ''),
		    updated_at = now()
		WHERE id = $1 AND clinic_id = $2
		RETURNING updated_at
	`, a.ID, a.ClinicID, a.Status, a.CancellationReason)

	if err := row.Scan(&a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}
