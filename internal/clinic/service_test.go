package clinic

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/caredesk/clinic-platform/internal/staff"
)

type fakeRepo struct {
	timing *Timing

	onboarded struct {
		clinic *Clinic
		owner  *staff.User
		doctor *staff.User
		timing *Timing
	}
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	return nil, ErrClinicNotFound
}

func (f *fakeRepo) GetByWhatsAppNumber(ctx context.Context, raw, normalized string) (*Clinic, error) {
	return nil, ErrClinicNotFound
}

func (f *fakeRepo) GetDefaultTiming(ctx context.Context, clinicID uuid.UUID) (*Timing, error) {
	if f.timing == nil {
		return nil, ErrTimingNotFound
	}
	return f.timing, nil
}

func (f *fakeRepo) Onboard(ctx context.Context, c *Clinic, owner, doctor *staff.User, timing *Timing) error {
	c.ID = uuid.New()
	f.onboarded.clinic = c
	f.onboarded.owner = owner
	f.onboarded.doctor = doctor
	f.onboarded.timing = timing
	return nil
}

func TestOnboard(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	var timing [7]DayTiming
	// Deliberately out of order; position must not matter.
	timing[0] = DayTiming{DayOfWeek: 3, Open: true, Slots: []TimingSlot{{Start: "09:00", End: "13:00"}}}
	timing[1] = DayTiming{DayOfWeek: 1, Open: true, Slots: []TimingSlot{{Start: "10:00", End: "14:00"}}}

	res, err := svc.Onboard(context.Background(), OnboardParams{
		Name:           "Sunrise Clinic",
		Code:           "sun01",
		ContactPhone:   "+911234567890",
		WhatsAppNumber: "+911234567890",
		Timezone:       "Asia/Kolkata",
		Owner: OwnerParams{
			FullName: "Asha Rao",
			Email:    "asha@example.com",
			Password: "super-secret-1",
		},
		DefaultDoctor: DoctorParams{
			FullName:       "Dr. Mehta",
			Email:          "mehta@example.com",
			Specialization: "Dermatology",
		},
		Timing:         timing,
		TimingTimezone: "Asia/Kolkata",
	})
	require.NoError(t, err)

	t.Run("clinic defaults", func(t *testing.T) {
		assert.Equal(t, "SUN01", res.Clinic.Code)
		assert.Equal(t, defaultSettings(), res.Clinic.Settings)
		assert.Equal(t, "+911234567890", res.Clinic.Contact.WhatsAppNumber)
	})

	t.Run("owner credentials", func(t *testing.T) {
		assert.Equal(t, staff.RoleOwner, res.Owner.Role)
		assert.Equal(t, ownerPermissions, res.Owner.Permissions)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.Owner.PasswordHash), []byte("super-secret-1")))
	})

	t.Run("doctor gets temporary password and profile", func(t *testing.T) {
		assert.Equal(t, staff.RoleDoctor, res.Doctor.Role)
		assert.Equal(t, doctorPermissions, res.Doctor.Permissions)
		require.NotNil(t, res.Doctor.DoctorProfile)
		assert.Equal(t, "Dermatology", res.Doctor.DoctorProfile.Specialization)
		assert.Error(t, bcrypt.CompareHashAndPassword([]byte(res.Doctor.PasswordHash), []byte("super-secret-1")))
	})

	t.Run("timing is reindexed by day of week", func(t *testing.T) {
		for i, d := range res.Timing.Week {
			assert.Equal(t, i, d.DayOfWeek)
		}
		assert.True(t, res.Timing.Week[3].Open)
		assert.True(t, res.Timing.Week[1].Open)
		assert.False(t, res.Timing.Week[0].Open)
		assert.True(t, res.Timing.Default)
	})
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+911234567890", NormalizePhone("+91 12345 67890"))
	assert.Equal(t, "911234567890", NormalizePhone("91-1234-567-890"))
	assert.Equal(t, "1234", NormalizePhone("(12) 34"))
	assert.Equal(t, "", NormalizePhone("abc"))
}

func TestOpenStateAt(t *testing.T) {
	clinicID := uuid.New()
	monday := func(hhmm string) time.Time {
		tm, err := time.Parse("15:04", hhmm)
		require.NoError(t, err)
		return time.Date(2025, 3, 10, tm.Hour(), tm.Minute(), 0, 0, time.UTC)
	}

	timingWith := func(days ...DayTiming) *Timing {
		timing := &Timing{}
		for i := range timing.Week {
			timing.Week[i].DayOfWeek = i
		}
		for _, d := range days {
			timing.Week[d.DayOfWeek] = d
		}
		return timing
	}

	t.Run("no stored timing means always open", func(t *testing.T) {
		svc := NewService(&fakeRepo{})
		state, err := svc.OpenStateAt(context.Background(), clinicID, monday("03:00"))
		require.NoError(t, err)
		assert.True(t, state.OpenNow)
	})

	t.Run("inside opening hours", func(t *testing.T) {
		svc := NewService(&fakeRepo{timing: timingWith(
			DayTiming{DayOfWeek: 1, Open: true, Slots: []TimingSlot{{Start: "09:00", End: "13:00"}}},
		)})
		state, err := svc.OpenStateAt(context.Background(), clinicID, monday("10:30"))
		require.NoError(t, err)
		assert.True(t, state.OpenNow)
	})

	t.Run("outside hours points at next opening", func(t *testing.T) {
		svc := NewService(&fakeRepo{timing: timingWith(
			DayTiming{DayOfWeek: 1, Open: true, Slots: []TimingSlot{{Start: "09:00", End: "13:00"}}},
			DayTiming{DayOfWeek: 3, Open: true, Slots: []TimingSlot{{Start: "10:00", End: "14:00"}}},
		)})
		state, err := svc.OpenStateAt(context.Background(), clinicID, monday("15:00"))
		require.NoError(t, err)
		assert.False(t, state.OpenNow)
		assert.Equal(t, "Day 3 at 10:00", state.NextOpenText)
	})

	t.Run("closed day rolls to the following opening", func(t *testing.T) {
		svc := NewService(&fakeRepo{timing: timingWith(
			DayTiming{DayOfWeek: 5, Open: true, Slots: []TimingSlot{{Start: "08:00", End: "12:00"}}},
		)})
		state, err := svc.OpenStateAt(context.Background(), clinicID, monday("10:00"))
		require.NoError(t, err)
		assert.False(t, state.OpenNow)
		assert.Equal(t, "Day 5 at 08:00", state.NextOpenText)
	})

	t.Run("never open", func(t *testing.T) {
		svc := NewService(&fakeRepo{timing: timingWith()})
		state, err := svc.OpenStateAt(context.Background(), clinicID, monday("10:00"))
		require.NoError(t, err)
		assert.False(t, state.OpenNow)
		assert.Empty(t, state.NextOpenText)
	})
}
