package whatsapp

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caredesk/clinic-platform/internal/appointment"
	"github.com/caredesk/clinic-platform/internal/clinic"
	"github.com/caredesk/clinic-platform/internal/notification"
)

type fakeClinics struct {
	clinic *clinic.Clinic
	open   clinic.OpenState
}

func (f *fakeClinics) FindByWhatsAppNumber(ctx context.Context, number string) (*clinic.Clinic, error) {
	if f.clinic == nil || f.clinic.Contact.WhatsAppNumber != number {
		return nil, clinic.ErrClinicNotFound
	}
	return f.clinic, nil
}

func (f *fakeClinics) OpenStateAt(ctx context.Context, clinicID uuid.UUID, now time.Time) (clinic.OpenState, error) {
	return f.open, nil
}

type fakeBooker struct {
	params []appointment.BookParams
	appt   *appointment.Appointment
	err    error
}

func (f *fakeBooker) Book(ctx context.Context, p appointment.BookParams) (*appointment.Appointment, error) {
	f.params = append(f.params, p)
	if f.err != nil {
		return nil, f.err
	}
	return f.appt, nil
}

type fakeOutbox struct {
	queued []*notification.Notification
}

func (f *fakeOutbox) Enqueue(ctx context.Context, n *notification.Notification) error {
	f.queued = append(f.queued, n)
	return nil
}

func TestHandleInbound(t *testing.T) {
	clinicNumber := "+911234567890"
	patientNumber := "+919876543210"

	cl := &clinic.Clinic{
		ID:   uuid.New(),
		Name: "Sunrise Clinic",
		Contact: clinic.Contact{
			WhatsAppNumber: clinicNumber,
		},
	}

	bookText := "BOOK|PATIENT:" + uuid.NewString() +
		"|DOCTOR:" + uuid.NewString() +
		"|DATE:2025-03-10|START:09:00|END:09:30|REASON:Fever"

	newService := func(clinics *fakeClinics, booker *fakeBooker, outbox *fakeOutbox) *Service {
		return NewService(clinics, booker, outbox, zerolog.Nop())
	}

	t.Run("unknown clinic number is ignored", func(t *testing.T) {
		svc := newService(&fakeClinics{clinic: cl}, &fakeBooker{}, &fakeOutbox{})

		res, err := svc.HandleInbound(context.Background(), InboundMessage{
			From: patientNumber,
			To:   "+910000000000",
			Text: "HI",
		})
		require.NoError(t, err)
		assert.Equal(t, "ignored", res.Status)
	})

	t.Run("greeting when open", func(t *testing.T) {
		outbox := &fakeOutbox{}
		svc := newService(&fakeClinics{clinic: cl, open: clinic.OpenState{OpenNow: true}}, &fakeBooker{}, outbox)

		res, err := svc.HandleInbound(context.Background(), InboundMessage{
			From: patientNumber,
			To:   clinicNumber,
			Text: "hello",
		})
		require.NoError(t, err)
		assert.Equal(t, "auto_replied", res.Status)
		assert.Contains(t, res.Reply, "Welcome to Sunrise Clinic")

		require.Len(t, outbox.queued, 1)
		assert.Equal(t, TemplateAutoReplyOpen, outbox.queued[0].TemplateCode)
		assert.Equal(t, notification.ChannelWhatsApp, outbox.queued[0].Channel)
		assert.Equal(t, patientNumber, outbox.queued[0].Recipient)
	})

	t.Run("greeting when closed includes next opening", func(t *testing.T) {
		outbox := &fakeOutbox{}
		svc := newService(&fakeClinics{
			clinic: cl,
			open:   clinic.OpenState{OpenNow: false, NextOpenText: "Day 1 at 09:00"},
		}, &fakeBooker{}, outbox)

		res, err := svc.HandleInbound(context.Background(), InboundMessage{
			From: patientNumber,
			To:   clinicNumber,
			Text: "HI",
		})
		require.NoError(t, err)
		assert.Equal(t, "auto_replied", res.Status)
		assert.Contains(t, res.Reply, "currently closed")
		assert.Contains(t, res.Reply, "Day 1 at 09:00")

		require.Len(t, outbox.queued, 1)
		assert.Equal(t, TemplateAutoReplyClosed, outbox.queued[0].TemplateCode)
	})

	t.Run("free text gets format hint", func(t *testing.T) {
		outbox := &fakeOutbox{}
		booker := &fakeBooker{}
		svc := newService(&fakeClinics{clinic: cl}, booker, outbox)

		res, err := svc.HandleInbound(context.Background(), InboundMessage{
			From: patientNumber,
			To:   clinicNumber,
			Text: "can I get an appointment tomorrow?",
		})
		require.NoError(t, err)
		assert.Equal(t, "invalid_format", res.Status)
		assert.Contains(t, res.Reply, "Invalid booking format")
		assert.Empty(t, booker.params)

		require.Len(t, outbox.queued, 1)
		assert.Equal(t, TemplateInvalidBooking, outbox.queued[0].TemplateCode)
	})

	t.Run("malformed ids get format hint", func(t *testing.T) {
		booker := &fakeBooker{}
		svc := newService(&fakeClinics{clinic: cl}, booker, &fakeOutbox{})

		res, err := svc.HandleInbound(context.Background(), InboundMessage{
			From: patientNumber,
			To:   clinicNumber,
			Text: "BOOK|PATIENT:not-a-uuid|DOCTOR:also-bad|DATE:2025-03-10|START:09:00|END:09:30",
		})
		require.NoError(t, err)
		assert.Equal(t, "invalid_format", res.Status)
		assert.Empty(t, booker.params)
	})

	t.Run("valid booking confirms and queues reply", func(t *testing.T) {
		apptID := uuid.New()
		booker := &fakeBooker{appt: &appointment.Appointment{
			ID:             apptID,
			BookingContext: appointment.BookingHospitalTime,
		}}
		outbox := &fakeOutbox{}
		svc := newService(&fakeClinics{clinic: cl}, booker, outbox)

		res, err := svc.HandleInbound(context.Background(), InboundMessage{
			From: patientNumber,
			To:   clinicNumber,
			Text: bookText,
		})
		require.NoError(t, err)
		assert.Equal(t, "booked", res.Status)
		assert.Equal(t, apptID, res.AppointmentID)
		assert.Equal(t, appointment.BookingHospitalTime, res.BookingContext)
		assert.Contains(t, res.Reply, "Hospital Time")

		require.Len(t, booker.params, 1)
		p := booker.params[0]
		assert.Equal(t, cl.ID, p.ClinicID)
		assert.Equal(t, appointment.SourceWhatsApp, p.Source)
		assert.Nil(t, p.BookedBy)
		assert.Equal(t, "Fever", p.Reason)

		require.Len(t, outbox.queued, 1)
		queued := outbox.queued[0]
		assert.Equal(t, notification.TypeAppointmentConfirmation, queued.Type)
		assert.Equal(t, TemplateConfirmation, queued.TemplateCode)
		require.NotNil(t, queued.AppointmentID)
		assert.Equal(t, apptID, *queued.AppointmentID)
	})

	t.Run("booking rejections surface as rejected", func(t *testing.T) {
		for _, bookErr := range []error{
			appointment.ErrSlotOutsideSchedule,
			appointment.ErrSlotTaken,
			appointment.ErrBookingInProgress,
		} {
			svc := newService(&fakeClinics{clinic: cl}, &fakeBooker{err: bookErr}, &fakeOutbox{})

			res, err := svc.HandleInbound(context.Background(), InboundMessage{
				From: patientNumber,
				To:   clinicNumber,
				Text: bookText,
			})
			require.NoError(t, err)
			assert.Equal(t, "rejected", res.Status)
			assert.Equal(t, bookErr.Error(), res.Reply)
		}
	})
}
