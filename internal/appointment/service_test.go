package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caredesk/clinic-platform/internal/redisclient"
	"github.com/caredesk/clinic-platform/internal/schedule"
)

type fakeRepo struct {
	existing []Appointment
	created  []*Appointment
	byID     map[uuid.UUID]*Appointment
	updated  []*Appointment
}

func (f *fakeRepo) ListActiveForDoctorDate(ctx context.Context, clinicID, doctorID uuid.UUID, date time.Time) ([]Appointment, error) {
	return f.existing, nil
}

func (f *fakeRepo) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	f.created = append(f.created, a)
	f.existing = append(f.existing, *a)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, clinicID, id uuid.UUID) (*Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, a *Appointment) error {
	f.updated = append(f.updated, a)
	if f.byID == nil {
		f.byID = map[uuid.UUID]*Appointment{}
	}
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeRepo) ListForClinicDate(ctx context.Context, clinicID uuid.UUID, date time.Time) ([]Appointment, error) {
	return f.existing, nil
}

type fakeScheduleFinder struct {
	schedules []schedule.DoctorSchedule
}

func (f *fakeScheduleFinder) FindActiveSchedules(ctx context.Context, clinicID, doctorID uuid.UUID) ([]schedule.DoctorSchedule, error) {
	return f.schedules, nil
}

type fakeNotifier struct {
	alerts []*Appointment
	err    error
}

func (f *fakeNotifier) HospitalBookingAlert(ctx context.Context, appt *Appointment) error {
	if f.err != nil {
		return f.err
	}
	f.alerts = append(f.alerts, appt)
	return nil
}

// fakeLocker runs the callback inline and records lock keys by date.
type fakeLocker struct {
	busy  bool
	dates []string
}

func (f *fakeLocker) WithBookingLock(ctx context.Context, clinicID, doctorID uuid.UUID, date string, fn func(ctx context.Context) error) error {
	if f.busy {
		return redisclient.ErrLockNotAcquired
	}
	f.dates = append(f.dates, date)
	return fn(ctx)
}

func weekWith(dow int, slots ...schedule.Slot) schedule.WeekSchedule {
	var w schedule.WeekSchedule
	for i := range w {
		w[i].DayOfWeek = i
	}
	w[dow].Available = true
	w[dow].Slots = slots
	return w
}

func newTestService(repo *fakeRepo, finder *fakeScheduleFinder, notifier *fakeNotifier, locker *fakeLocker) *Service {
	return NewService(repo, finder, notifier, locker, zerolog.Nop())
}

func TestBook(t *testing.T) {
	clinicID := uuid.New()
	doctorID := uuid.New()
	patientID := uuid.New()
	monday := time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC) // time of day must be ignored

	clinicSched := schedule.DoctorSchedule{
		Context: schedule.ContextClinic,
		Week:    weekWith(1, schedule.Slot{Start: "09:00", End: "13:00"}),
	}
	hospitalSched := schedule.DoctorSchedule{
		Context: schedule.ContextHospital,
		Week:    weekWith(1, schedule.Slot{Start: "14:00", End: "16:00"}),
	}

	params := func() BookParams {
		return BookParams{
			ClinicID:  clinicID,
			DoctorID:  doctorID,
			PatientID: patientID,
			Date:      monday,
			StartTime: "09:00",
			EndTime:   "09:30",
		}
	}

	t.Run("clinic time booking sends no alert", func(t *testing.T) {
		repo := &fakeRepo{}
		notifier := &fakeNotifier{}
		locker := &fakeLocker{}
		svc := newTestService(repo, &fakeScheduleFinder{schedules: []schedule.DoctorSchedule{clinicSched, hospitalSched}}, notifier, locker)

		appt, err := svc.Book(context.Background(), params())
		require.NoError(t, err)

		assert.Equal(t, BookingClinicTime, appt.BookingContext)
		assert.Equal(t, StatusBooked, appt.Status)
		assert.Equal(t, SourceStaff, appt.Source)
		assert.Equal(t, TypeNew, appt.Type)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), appt.Date)
		assert.Empty(t, notifier.alerts)
		assert.Equal(t, []string{"2025-03-10"}, locker.dates)
	})

	t.Run("hospital time booking alerts the doctor once", func(t *testing.T) {
		repo := &fakeRepo{}
		notifier := &fakeNotifier{}
		svc := newTestService(repo, &fakeScheduleFinder{schedules: []schedule.DoctorSchedule{clinicSched, hospitalSched}}, notifier, &fakeLocker{})

		p := params()
		p.StartTime = "14:00"
		p.EndTime = "14:30"

		appt, err := svc.Book(context.Background(), p)
		require.NoError(t, err)

		assert.Equal(t, BookingHospitalTime, appt.BookingContext)
		require.Len(t, notifier.alerts, 1)
		assert.Equal(t, appt.ID, notifier.alerts[0].ID)
	})

	t.Run("alert failure does not unwind the booking", func(t *testing.T) {
		repo := &fakeRepo{}
		notifier := &fakeNotifier{err: errors.New("broker down")}
		svc := newTestService(repo, &fakeScheduleFinder{schedules: []schedule.DoctorSchedule{hospitalSched}}, notifier, &fakeLocker{})

		p := params()
		p.StartTime = "14:00"
		p.EndTime = "14:30"

		appt, err := svc.Book(context.Background(), p)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, appt.ID)
		assert.Len(t, repo.created, 1)
	})

	t.Run("slot outside every schedule is rejected", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo, &fakeScheduleFinder{schedules: []schedule.DoctorSchedule{clinicSched, hospitalSched}}, &fakeNotifier{}, &fakeLocker{})

		p := params()
		p.StartTime = "13:30"
		p.EndTime = "14:00"

		_, err := svc.Book(context.Background(), p)
		assert.ErrorIs(t, err, ErrSlotOutsideSchedule)
		assert.Empty(t, repo.created)
	})

	t.Run("overlapping booking is rejected", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo, &fakeScheduleFinder{schedules: []schedule.DoctorSchedule{clinicSched}}, &fakeNotifier{}, &fakeLocker{})

		first, err := svc.Book(context.Background(), params())
		require.NoError(t, err)
		require.NotNil(t, first)

		p := params()
		p.StartTime = "09:15"
		p.EndTime = "09:45"

		_, err = svc.Book(context.Background(), p)
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Len(t, repo.created, 1)
	})

	t.Run("back to back bookings both succeed", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo, &fakeScheduleFinder{schedules: []schedule.DoctorSchedule{clinicSched}}, &fakeNotifier{}, &fakeLocker{})

		_, err := svc.Book(context.Background(), params())
		require.NoError(t, err)

		p := params()
		p.StartTime = "09:30"
		p.EndTime = "10:00"

		_, err = svc.Book(context.Background(), p)
		require.NoError(t, err)
		assert.Len(t, repo.created, 2)
	})

	t.Run("lock contention surfaces as booking in progress", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo, &fakeScheduleFinder{schedules: []schedule.DoctorSchedule{clinicSched}}, &fakeNotifier{}, &fakeLocker{busy: true})

		_, err := svc.Book(context.Background(), params())
		assert.ErrorIs(t, err, ErrBookingInProgress)
		assert.Empty(t, repo.created)
	})
}

func TestUpdateStatus(t *testing.T) {
	clinicID := uuid.New()

	seed := func(status Status) (*fakeRepo, uuid.UUID) {
		id := uuid.New()
		repo := &fakeRepo{byID: map[uuid.UUID]*Appointment{
			id: {ID: id, ClinicID: clinicID, Status: status},
		}}
		return repo, id
	}

	svc := func(repo *fakeRepo) *Service {
		return newTestService(repo, &fakeScheduleFinder{}, &fakeNotifier{}, &fakeLocker{})
	}

	t.Run("booked to waiting", func(t *testing.T) {
		repo, id := seed(StatusBooked)
		appt, err := svc(repo).UpdateStatus(context.Background(), clinicID, id, StatusWaiting, "")
		require.NoError(t, err)
		assert.Equal(t, StatusWaiting, appt.Status)
	})

	t.Run("waiting to completed", func(t *testing.T) {
		repo, id := seed(StatusWaiting)
		appt, err := svc(repo).UpdateStatus(context.Background(), clinicID, id, StatusCompleted, "")
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, appt.Status)
	})

	t.Run("cancel requires a reason", func(t *testing.T) {
		repo, id := seed(StatusBooked)
		_, err := svc(repo).UpdateStatus(context.Background(), clinicID, id, StatusCancelled, "")
		assert.ErrorIs(t, err, ErrCancelReasonRequired)
		assert.Empty(t, repo.updated)
	})

	t.Run("cancel records the reason", func(t *testing.T) {
		repo, id := seed(StatusBooked)
		appt, err := svc(repo).UpdateStatus(context.Background(), clinicID, id, StatusCancelled, "patient unavailable")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, appt.Status)
		assert.Equal(t, "patient unavailable", appt.CancellationReason)
	})

	t.Run("terminal states reject transitions", func(t *testing.T) {
		for _, terminal := range []Status{StatusCompleted, StatusCancelled} {
			repo, id := seed(terminal)
			_, err := svc(repo).UpdateStatus(context.Background(), clinicID, id, StatusWaiting, "")
			assert.ErrorIs(t, err, ErrInvalidTransition)
		}
	})

	t.Run("waiting cannot go back to booked", func(t *testing.T) {
		repo, id := seed(StatusWaiting)
		_, err := svc(repo).UpdateStatus(context.Background(), clinicID, id, StatusBooked, "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		repo := &fakeRepo{byID: map[uuid.UUID]*Appointment{}}
		_, err := svc(repo).UpdateStatus(context.Background(), clinicID, uuid.New(), StatusWaiting, "")
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestStatusCanTransitionTo(t *testing.T) {
	assert.True(t, StatusBooked.CanTransitionTo(StatusWaiting))
	assert.True(t, StatusBooked.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusBooked.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusWaiting.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusWaiting.CanTransitionTo(StatusCancelled))

	assert.False(t, StatusWaiting.CanTransitionTo(StatusBooked))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusWaiting))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusBooked))
	assert.False(t, StatusBooked.CanTransitionTo(StatusBooked))
}
