package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/caredesk/clinic-platform/internal/appointment"
	"github.com/caredesk/clinic-platform/internal/clinic"
	"github.com/caredesk/clinic-platform/internal/notification"
	"github.com/caredesk/clinic-platform/internal/patient"
	"github.com/caredesk/clinic-platform/internal/schedule"
	"github.com/caredesk/clinic-platform/internal/staff"
	"github.com/caredesk/clinic-platform/internal/whatsapp"
)

type RouterConfig struct {
	Appointments  *appointment.Service
	Schedules     *schedule.Service
	Clinics       *clinic.Service
	Patients      *patient.Service
	Staff         *staff.Service
	Notifications *notification.Service
	WhatsApp      *whatsapp.Service
	PgPool        *pgxpool.Pool
	Redis         *redis.Client
	JWTSecret     string
	Env           string
	Version       string
	Log           zerolog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Log))
	r.Use(RecoveryMiddleware(cfg.Log))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Public surface: provider webhooks and onboarding.
	r.Post("/v1/clinics/onboard", onboardClinicHandler(cfg.Clinics))
	r.Post("/v1/whatsapp/webhook", whatsappWebhookHandler(cfg.WhatsApp))

	// Everything else requires a staff token scoped to a clinic.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.JWTSecret))

		r.Get("/v1/clinic", getClinicHandler(cfg.Clinics))

		r.Post("/v1/staff", createStaffHandler(cfg.Staff))
		r.Get("/v1/staff/{id}", getStaffHandler(cfg.Staff))
		r.Get("/v1/doctors", listDoctorsHandler(cfg.Staff))

		r.Post("/v1/schedules", upsertScheduleHandler(cfg.Schedules))
		r.Get("/v1/doctors/{doctorID}/schedules", listSchedulesHandler(cfg.Schedules))
		r.Delete("/v1/doctors/{doctorID}/schedules/{context}", deactivateScheduleHandler(cfg.Schedules))

		r.Post("/v1/appointments", bookAppointmentHandler(cfg.Appointments))
		r.Get("/v1/appointments", listAppointmentsHandler(cfg.Appointments))
		r.Get("/v1/appointments/{id}", getAppointmentHandler(cfg.Appointments))
		r.Patch("/v1/appointments/{id}/status", updateAppointmentStatusHandler(cfg.Appointments))

		r.Post("/v1/patients", registerPatientHandler(cfg.Patients))
		r.Get("/v1/patients", listPatientsHandler(cfg.Patients))
		r.Get("/v1/patients/{id}", getPatientHandler(cfg.Patients))
		r.Delete("/v1/patients/{id}", deactivatePatientHandler(cfg.Patients))

		r.Get("/v1/notifications", listNotificationsHandler(cfg.Notifications))
	})

	return r
}
