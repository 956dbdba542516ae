package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/caredesk/clinic-platform/internal/clinic"
	"github.com/caredesk/clinic-platform/internal/db"
	"github.com/caredesk/clinic-platform/internal/schedule"
	"github.com/caredesk/clinic-platform/internal/staff"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	clinicID, ownerID, doctorIDs, err := seedClinic(context.Background(), pool, 5)
	if err != nil {
		log.Fatalf("seed clinic: %v", err)
	}
	if err := seedSchedules(context.Background(), pool, clinicID, ownerID, doctorIDs); err != nil {
		log.Fatalf("seed schedules: %v", err)
	}
	if err := seedPatients(context.Background(), pool, clinicID, 2000); err != nil {
		log.Fatalf("seed patients: %v", err)
	}

	log.Println("seed complete")
	log.Printf("clinic_id=%s owner_id=%s doctors=%d", clinicID, ownerID, len(doctorIDs))
}

func seedClinic(ctx context.Context, pool *pgxpool.Pool, doctorCount int) (clinicID, ownerID uuid.UUID, doctorIDs []uuid.UUID, err error) {
	log.Printf("seeding clinic with %d doctors", doctorCount)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, uuid.Nil, nil, err
	}
	defer tx.Rollback(ctx)

	clinicID = uuid.New()
	whatsapp := gofakeit.Phone()

	contact, _ := json.Marshal(clinic.Contact{
		Phone:          gofakeit.Phone(),
		WhatsAppNumber: whatsapp,
		Email:          gofakeit.Email(),
	})
	address, _ := json.Marshal(clinic.Address{
		Line1:   gofakeit.Street(),
		City:    gofakeit.City(),
		State:   gofakeit.State(),
		Pincode: gofakeit.Zip(),
		Country: "IN",
	})
	settings, _ := json.Marshal(clinic.Settings{
		AppointmentSlotMinutes: 15,
		AllowOverbooking:       false,
		ReminderLeadMinutes:    120,
		Currency:               "INR",
		DashboardActive:        true,
	})

	_, err = tx.Exec(ctx, `
		INSERT INTO clinics (id, name, code, contact, address, timezone, specialties, settings, is_active, onboarding_completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true, now(), now(), now())
	`, clinicID, gofakeit.Company()+" Clinic", "CL-"+strings.ToUpper(uuid.NewString()[:6]),
		contact, address, "Asia/Kolkata", []string{"General Practice", "Dermatology"}, settings)
	if err != nil {
		return uuid.Nil, uuid.Nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("seed-password"), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, uuid.Nil, nil, err
	}

	ownerID = uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, clinic_id, full_name, email, phone, password_hash, role, doctor_profile, permissions, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'owner', 'null', $7, true, now(), now())
	`, ownerID, clinicID, gofakeit.Name(), gofakeit.Email(), gofakeit.Phone(), string(hash),
		[]string{"clinic:manage", "staff:manage", "appointments:manage"})
	if err != nil {
		return uuid.Nil, uuid.Nil, nil, err
	}

	specialties := []string{
		"Dermatology",
		"Cardiology",
		"General Practice",
		"Orthopedics",
		"Pediatrics",
	}

	for i := 0; i < doctorCount; i++ {
		id := uuid.New()
		profile, _ := json.Marshal(staff.DoctorProfile{
			RegistrationNumber: fmt.Sprintf("REG-%05d", gofakeit.Number(1, 99999)),
			Specialization:     specialties[gofakeit.Number(0, len(specialties)-1)],
			Qualification:      "MBBS",
			ConsultationFee:    float64(gofakeit.Number(200, 1500)),
		})

		_, err = tx.Exec(ctx, `
			INSERT INTO users (id, clinic_id, full_name, email, phone, password_hash, role, doctor_profile, permissions, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, 'doctor', $7, $8, true, now(), now())
		`, id, clinicID, "Dr. "+gofakeit.Name(), gofakeit.Email(), gofakeit.Phone(), string(hash),
			profile, []string{"appointments:manage", "patients:read"})
		if err != nil {
			return uuid.Nil, uuid.Nil, nil, err
		}
		doctorIDs = append(doctorIDs, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, uuid.Nil, nil, err
	}

	log.Println("clinic seeded")
	return clinicID, ownerID, doctorIDs, nil
}

func seedSchedules(ctx context.Context, pool *pgxpool.Pool, clinicID, ownerID uuid.UUID, doctorIDs []uuid.UUID) error {
	log.Printf("seeding schedules for %d doctors", len(doctorIDs))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, doctorID := range doctorIDs {
		var week schedule.WeekSchedule
		for day := 0; day < 7; day++ {
			week[day] = schedule.DaySchedule{DayOfWeek: day}
			if day == 0 {
				continue // Sunday off
			}
			week[day].Available = true
			week[day].Slots = []schedule.Slot{
				{Start: "09:00", End: "13:00"},
				{Start: "17:00", End: "20:00"},
			}
		}
		weekJSON, err := json.Marshal(week)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO doctor_schedules (id, clinic_id, doctor_id, schedule_type, location_name, timezone, weekly_schedule, is_active, created_by, updated_by, created_at, updated_at)
			VALUES ($1, $2, $3, 'clinic', $4, 'Asia/Kolkata', $5, true, $6, $6, now(), now())
		`, uuid.New(), clinicID, doctorID, gofakeit.Company()+" Clinic", weekJSON, ownerID)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("schedules seeded")
	return nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, clinicID uuid.UUID, count int) error {
	log.Printf("seeding %d patients", count)

	const batchSize = 500
	genders := []string{"male", "female", "other"}

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for i := offset; i < end; i++ {
			id := uuid.New()
			phone := gofakeit.Phone()
			dob := gofakeit.DateRange(
				time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2015, 12, 31, 0, 0, 0, 0, time.UTC),
			)

			_, err := tx.Exec(ctx, `
				INSERT INTO patients (id, clinic_id, patient_code, full_name, gender, date_of_birth, blood_group, phone, whatsapp_number, email, address, allergies, chronic_conditions, emergency_contact, referred_by, is_active, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, $9, 'null', $10, $11, 'null', '', true, now(), now())
			`, id, clinicID, fmt.Sprintf("PAT-%06d", i+1), gofakeit.Name(),
				genders[gofakeit.Number(0, len(genders)-1)], dob, "O+",
				phone, gofakeit.Email(), []string{}, []string{})
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		log.Printf("patients seeded: %d/%d", end, count)
	}

	log.Println("patients seeded")
	return nil
}
