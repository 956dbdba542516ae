package patient

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

const patientColumns = `id, clinic_id, patient_code, full_name, gender, date_of_birth, blood_group, phone, whatsapp_number, email, address, allergies, chronic_conditions, emergency_contact, referred_by, is_active, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	var dob *time.Time
	var address, emergency []byte

	err := row.Scan(
		&p.ID,
		&p.ClinicID,
		&p.Code,
		&p.FullName,
		&p.Gender,
		&dob,
		&p.BloodGroup,
		&p.Phone,
		&p.WhatsAppNumber,
		&p.Email,
		&address,
		&p.Allergies,
		&p.ChronicConditions,
		&emergency,
		&p.ReferredBy,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	p.DateOfBirth = dob
	if len(address) > 0 {
		if err := json.Unmarshal(address, &p.Address); err != nil {
			return nil, fmt.Errorf("decode patient address: %w", err)
		}
	}
	if len(emergency) > 0 {
		var ec EmergencyContact
		if err := json.Unmarshal(emergency, &ec); err != nil {
			return nil, fmt.Errorf("decode emergency contact: %w", err)
		}
		p.EmergencyContact = &ec
	}
	return &p, nil
}

func (r *PgRepository) Create(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	address, err := json.Marshal(p.Address)
	if err != nil {
		return fmt.Errorf("encode patient address: %w", err)
	}
	var emergency []byte
	if p.EmergencyContact != nil {
		emergency, err = json.Marshal(p.EmergencyContact)
		if err != nil {
			return fmt.Errorf("encode emergency contact: %w", err)
		}
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO patients
			(id, clinic_id, patient_code, full_name, gender, date_of_birth, blood_group, phone, whatsapp_number, email, address, allergies, chronic_conditions, emergency_contact, referred_by, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, true, now(), now())
		RETURNING created_at, updated_at
	`, p.ID, p.ClinicID, p.Code, p.FullName, p.Gender, p.DateOfBirth, p.BloodGroup, p.Phone, p.WhatsAppNumber, p.Email, address, p.Allergies, p.ChronicConditions, emergency, p.ReferredBy)

	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrCodeTaken
		}
		return fmt.Errorf("insert patient: %w", err)
	}
	p.Active = true
	return nil
}

func (r *PgRepository) GetByID(ctx context.Context, clinicID, id uuid.UUID) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE id = $1 AND clinic_id = $2
	`, id, clinicID)
	return scanPatient(row)
}

func (r *PgRepository) ListByClinic(ctx context.Context, clinicID uuid.UUID, limit, offset int) ([]Patient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE clinic_id = $1 AND is_active = true
		ORDER BY full_name
		LIMIT $2 OFFSET $3
	`, clinicID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) Deactivate(ctx context.Context, clinicID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patients
		SET is_active = false,
		    updated_at = now()
		WHERE id = $1 AND clinic_id = $2
	`, id, clinicID)
	if err != nil {
		return fmt.Errorf("deactivate patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPatientNotFound
	}
	return nil
}
