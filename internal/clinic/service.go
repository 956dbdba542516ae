package clinic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/caredesk/clinic-platform/internal/staff"
)

const bcryptCost = 12

var ownerPermissions = []string{"CLINIC_MANAGE", "USER_MANAGE", "APPOINTMENT_MANAGE", "BILLING_MANAGE"}

var doctorPermissions = []string{"APPOINTMENT_READ", "PATIENT_READ", "PRESCRIPTION_MANAGE", "VISIT_MANAGE"}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type OwnerParams struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

type DoctorParams struct {
	FullName           string
	Email              string
	Phone              string
	RegistrationNumber string
	Specialization     string
	Qualification      string
	ConsultationFee    float64
}

type OnboardParams struct {
	Name           string
	Code           string
	ContactPhone   string
	ContactEmail   string
	WhatsAppNumber string
	Address        Address
	Timezone       string
	Specialties    []string
	Owner          OwnerParams
	DefaultDoctor  DoctorParams
	Timing         [7]DayTiming
	TimingTimezone string
}

type OnboardResult struct {
	Clinic *Clinic
	Owner  *staff.User
	Doctor *staff.User
	Timing *Timing
}

// Onboard provisions a clinic with its owner, default doctor, and default
// opening hours as one all-or-nothing unit of work. The doctor gets a
// generated temporary password.
func (s *Service) Onboard(ctx context.Context, p OnboardParams) (*OnboardResult, error) {
	ownerHash, err := bcrypt.GenerateFromPassword([]byte(p.Owner.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash owner password: %w", err)
	}
	doctorHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword()), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash doctor password: %w", err)
	}

	c := &Clinic{
		Name: p.Name,
		Code: strings.ToUpper(p.Code),
		Contact: Contact{
			Phone:          p.ContactPhone,
			Email:          p.ContactEmail,
			WhatsAppNumber: p.WhatsAppNumber,
		},
		Address:     p.Address,
		Timezone:    p.Timezone,
		Specialties: p.Specialties,
		Settings:    defaultSettings(),
	}

	owner := &staff.User{
		FullName:     p.Owner.FullName,
		Email:        p.Owner.Email,
		Phone:        p.Owner.Phone,
		PasswordHash: string(ownerHash),
		Role:         staff.RoleOwner,
		Permissions:  ownerPermissions,
	}

	doctor := &staff.User{
		FullName:     p.DefaultDoctor.FullName,
		Email:        p.DefaultDoctor.Email,
		Phone:        p.DefaultDoctor.Phone,
		PasswordHash: string(doctorHash),
		Role:         staff.RoleDoctor,
		DoctorProfile: &staff.DoctorProfile{
			RegistrationNumber: p.DefaultDoctor.RegistrationNumber,
			Specialization:     p.DefaultDoctor.Specialization,
			Qualification:      p.DefaultDoctor.Qualification,
			ConsultationFee:    p.DefaultDoctor.ConsultationFee,
		},
		Permissions: doctorPermissions,
	}

	// Reindex so position i always holds day-of-week i.
	var week [7]DayTiming
	for i := range week {
		week[i].DayOfWeek = i
	}
	for _, d := range p.Timing {
		if d.DayOfWeek >= 0 && d.DayOfWeek <= 6 {
			week[d.DayOfWeek] = d
		}
	}

	timing := &Timing{
		Timezone: p.TimingTimezone,
		Week:     week,
		Default:  true,
	}

	if err := s.repo.Onboard(ctx, c, owner, doctor, timing); err != nil {
		return nil, err
	}

	return &OnboardResult{Clinic: c, Owner: owner, Doctor: doctor, Timing: timing}, nil
}

func temporaryPassword() string {
	return "Temp#" + uuid.NewString()[:10] + "A1"
}

func (s *Service) GetClinic(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	return s.repo.GetByID(ctx, id)
}

// FindByWhatsAppNumber resolves the clinic addressed by an inbound WhatsApp
// message. Numbers are matched raw and with formatting stripped.
func (s *Service) FindByWhatsAppNumber(ctx context.Context, number string) (*Clinic, error) {
	return s.repo.GetByWhatsAppNumber(ctx, number, NormalizePhone(number))
}

// NormalizePhone strips everything except digits and a leading plus.
func NormalizePhone(value string) string {
	var b strings.Builder
	for i, r := range value {
		if r >= '0' && r <= '9' || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// OpenStateAt reports whether the clinic is open at the given instant per
// its default timing, and the next opening when closed. A clinic without a
// stored timing is treated as always open.
func (s *Service) OpenStateAt(ctx context.Context, clinicID uuid.UUID, now time.Time) (OpenState, error) {
	timing, err := s.repo.GetDefaultTiming(ctx, clinicID)
	if err != nil {
		if errors.Is(err, ErrTimingNotFound) {
			return OpenState{OpenNow: true}, nil
		}
		return OpenState{}, fmt.Errorf("load clinic timing: %w", err)
	}

	day := int(now.Weekday())
	currentMinutes := now.Hour()*60 + now.Minute()

	today := timing.Week[day]
	if today.Open {
		for _, slot := range today.Slots {
			if currentMinutes >= toMinutes(slot.Start) && currentMinutes <= toMinutes(slot.End) {
				return OpenState{OpenNow: true}, nil
			}
		}
	}

	for i := 1; i <= 7; i++ {
		next := timing.Week[(day+i)%7]
		if next.Open && len(next.Slots) > 0 {
			return OpenState{
				OpenNow:      false,
				NextOpenText: fmt.Sprintf("Day %d at %s", next.DayOfWeek, next.Slots[0].Start),
			}, nil
		}
	}

	return OpenState{OpenNow: false}, nil
}

func toMinutes(hhmm string) int {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return -1
	}
	return h*60 + m
}
