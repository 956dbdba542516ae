package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/caredesk/clinic-platform/internal/appointment"
)

func bookAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}

		var req BookAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		doctorID, err := uuid.Parse(req.DoctorID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_doctor_id", "doctor_id must be a valid UUID")
			return
		}
		patientID, err := uuid.Parse(req.PatientID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "patient_id must be a valid UUID")
			return
		}
		date, err := time.Parse("2006-01-02", req.AppointmentDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", "appointment_date must be YYYY-MM-DD")
			return
		}
		if err := validateBookAppointment(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_booking", err.Error())
			return
		}

		bookedBy := auth.UserID
		appt, err := svc.Book(r.Context(), appointment.BookParams{
			ClinicID:  auth.ClinicID,
			DoctorID:  doctorID,
			PatientID: patientID,
			BookedBy:  &bookedBy,
			Date:      date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Source:    appointment.Source(req.Source),
			Reason:    req.Reason,
			Type:      appointment.Type(req.Type),
		})
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(appt))
	}
}

func handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appointment.ErrSlotOutsideSchedule):
		writeError(w, http.StatusConflict, "slot_outside_schedule", err.Error())
	case errors.Is(err, appointment.ErrSlotTaken):
		writeError(w, http.StatusConflict, "slot_taken", err.Error())
	case errors.Is(err, appointment.ErrBookingInProgress):
		writeError(w, http.StatusConflict, "booking_in_progress", "another booking for this doctor is in progress, please retry shortly")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func updateAppointmentStatusHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		var req UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := validateUpdateStatus(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_status", err.Error())
			return
		}

		appt, err := svc.UpdateStatus(r.Context(), auth.ClinicID, id, appointment.Status(req.Status), req.CancellationReason)
		if err != nil {
			switch {
			case errors.Is(err, appointment.ErrAppointmentNotFound):
				writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
			case errors.Is(err, appointment.ErrInvalidTransition):
				writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
			case errors.Is(err, appointment.ErrCancelReasonRequired):
				writeError(w, http.StatusBadRequest, "cancellation_reason_required", err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func getAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		appt, err := svc.GetAppointment(r.Context(), auth.ClinicID, id)
		if err != nil {
			if errors.Is(err, appointment.ErrAppointmentNotFound) {
				writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func listAppointmentsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}

		date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", "date query parameter must be YYYY-MM-DD")
			return
		}

		appts, err := svc.ListForClinicDate(r.Context(), auth.ClinicID, date)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]AppointmentResponse, 0, len(appts))
		for i := range appts {
			resp = append(resp, toAppointmentResponse(&appts[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
