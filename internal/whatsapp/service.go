package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/caredesk/clinic-platform/internal/appointment"
	"github.com/caredesk/clinic-platform/internal/clinic"
	"github.com/caredesk/clinic-platform/internal/notification"
)

// ClinicResolver is the slice of the clinic service the inbound flow needs.
type ClinicResolver interface {
	FindByWhatsAppNumber(ctx context.Context, number string) (*clinic.Clinic, error)
	OpenStateAt(ctx context.Context, clinicID uuid.UUID, now time.Time) (clinic.OpenState, error)
}

// Booker is the booking orchestrator entry point.
type Booker interface {
	Book(ctx context.Context, p appointment.BookParams) (*appointment.Appointment, error)
}

// Outbox queues outgoing replies; nothing is sent inline.
type Outbox interface {
	Enqueue(ctx context.Context, n *notification.Notification) error
}

type InboundMessage struct {
	From string // patient's WhatsApp number
	To   string // clinic's WhatsApp number
	Text string
}

type InboundResult struct {
	Status         string // ignored, auto_replied, invalid_format, rejected, booked
	ClinicID       uuid.UUID
	AppointmentID  uuid.UUID
	BookingContext appointment.BookingContext
	Reply          string
}

type Service struct {
	clinics ClinicResolver
	booker  Booker
	outbox  Outbox
	now     func() time.Time
	log     zerolog.Logger
}

func NewService(clinics ClinicResolver, booker Booker, outbox Outbox, log zerolog.Logger) *Service {
	return &Service{
		clinics: clinics,
		booker:  booker,
		outbox:  outbox,
		now:     time.Now,
		log:     log,
	}
}

// HandleInbound processes one webhook message:
//  1. resolve the clinic from the inbound number;
//  2. greetings get an open/closed auto-reply from the clinic's timing;
//  3. BOOK messages are parsed and handed to the booking orchestrator;
//  4. every reply is queued as a whatsapp notification, never sent inline.
func (s *Service) HandleInbound(ctx context.Context, msg InboundMessage) (*InboundResult, error) {
	cl, err := s.clinics.FindByWhatsAppNumber(ctx, msg.To)
	if err != nil {
		if errors.Is(err, clinic.ErrClinicNotFound) {
			return &InboundResult{Status: "ignored"}, nil
		}
		return nil, fmt.Errorf("resolve clinic: %w", err)
	}

	upper := strings.ToUpper(strings.TrimSpace(msg.Text))
	if upper == "HI" || upper == "HELLO" || upper == "HELP" {
		return s.autoReply(ctx, cl, msg.From)
	}

	parsed := ParseBookingMessage(msg.Text)
	if parsed == nil {
		reply := invalidBookingReply()
		s.queueReply(ctx, cl.ID, msg.From, notification.TypeGeneral, TemplateInvalidBooking, map[string]any{"text": reply})
		return &InboundResult{Status: "invalid_format", ClinicID: cl.ID, Reply: reply}, nil
	}

	params, err := s.toBookParams(cl.ID, parsed)
	if err != nil {
		reply := invalidBookingReply()
		s.queueReply(ctx, cl.ID, msg.From, notification.TypeGeneral, TemplateInvalidBooking, map[string]any{"text": reply})
		return &InboundResult{Status: "invalid_format", ClinicID: cl.ID, Reply: reply}, nil
	}

	appt, err := s.booker.Book(ctx, params)
	if err != nil {
		if errors.Is(err, appointment.ErrSlotOutsideSchedule) ||
			errors.Is(err, appointment.ErrSlotTaken) ||
			errors.Is(err, appointment.ErrBookingInProgress) {
			return &InboundResult{Status: "rejected", ClinicID: cl.ID, Reply: err.Error()}, nil
		}
		return nil, err
	}

	contextLabel := "Clinic Time"
	if appt.BookingContext == appointment.BookingHospitalTime {
		contextLabel = "Hospital Time"
	}
	reply := confirmationReply(cl.Name, parsed.Date, parsed.StartTime, parsed.EndTime, contextLabel)

	apptID := appt.ID
	s.queueReplyFull(ctx, &notification.Notification{
		ClinicID:      cl.ID,
		AppointmentID: &apptID,
		Type:          notification.TypeAppointmentConfirmation,
		Channel:       notification.ChannelWhatsApp,
		Recipient:     msg.From,
		TemplateCode:  TemplateConfirmation,
		Payload: map[string]any{
			"text":           reply,
			"appointment_id": appt.ID.String(),
		},
	})

	return &InboundResult{
		Status:         "booked",
		ClinicID:       cl.ID,
		AppointmentID:  appt.ID,
		BookingContext: appt.BookingContext,
		Reply:          reply,
	}, nil
}

func (s *Service) autoReply(ctx context.Context, cl *clinic.Clinic, from string) (*InboundResult, error) {
	state, err := s.clinics.OpenStateAt(ctx, cl.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("clinic open state: %w", err)
	}

	var reply, template string
	if state.OpenNow {
		reply = openAutoReply(cl.Name)
		template = TemplateAutoReplyOpen
	} else {
		reply = closedAutoReply(cl.Name, state.NextOpenText)
		template = TemplateAutoReplyClosed
	}

	s.queueReply(ctx, cl.ID, from, notification.TypeGeneral, template, map[string]any{"text": reply})
	return &InboundResult{Status: "auto_replied", ClinicID: cl.ID, Reply: reply}, nil
}

func (s *Service) toBookParams(clinicID uuid.UUID, req *BookingRequest) (appointment.BookParams, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return appointment.BookParams{}, fmt.Errorf("invalid patient id: %w", err)
	}
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return appointment.BookParams{}, fmt.Errorf("invalid doctor id: %w", err)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return appointment.BookParams{}, fmt.Errorf("invalid date: %w", err)
	}
	if !validHHMM(req.StartTime) || !validHHMM(req.EndTime) || req.StartTime >= req.EndTime {
		return appointment.BookParams{}, errors.New("invalid time range")
	}

	return appointment.BookParams{
		ClinicID:  clinicID,
		DoctorID:  doctorID,
		PatientID: patientID,
		BookedBy:  nil, // automated channel
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Source:    appointment.SourceWhatsApp,
		Reason:    req.Reason,
		Type:      appointment.TypeNew,
	}, nil
}

func validHHMM(v string) bool {
	if len(v) != 5 || v[2] != ':' {
		return false
	}
	h := (int(v[0]-'0') * 10) + int(v[1]-'0')
	m := (int(v[3]-'0') * 10) + int(v[4]-'0')
	for _, c := range []byte{v[0], v[1], v[3], v[4]} {
		if c < '0' || c > '9' {
			return false
		}
	}
	return h >= 0 && h <= 23 && m >= 0 && m <= 59
}

func (s *Service) queueReply(ctx context.Context, clinicID uuid.UUID, recipient string, typ notification.Type, template string, payload map[string]any) {
	s.queueReplyFull(ctx, &notification.Notification{
		ClinicID:     clinicID,
		Type:         typ,
		Channel:      notification.ChannelWhatsApp,
		Recipient:    recipient,
		TemplateCode: template,
		Payload:      payload,
	})
}

func (s *Service) queueReplyFull(ctx context.Context, n *notification.Notification) {
	if err := s.outbox.Enqueue(ctx, n); err != nil {
		s.log.Error().Err(err).
			Str("clinic_id", n.ClinicID.String()).
			Str("template", n.TemplateCode).
			Msg("failed to queue whatsapp reply")
	}
}
