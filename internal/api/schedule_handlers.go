package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/caredesk/clinic-platform/internal/schedule"
)

func upsertScheduleHandler(svc *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}

		var req UpsertScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		doctorID, err := uuid.Parse(req.DoctorID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_doctor_id", "doctor_id must be a valid UUID")
			return
		}
		if err := validateUpsertSchedule(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_schedule", err.Error())
			return
		}

		var week schedule.WeekSchedule
		for i, day := range req.Weekly {
			slots := make([]schedule.Slot, 0, len(day.Slots))
			for _, s := range day.Slots {
				slots = append(slots, schedule.Slot{Start: s.StartTime, End: s.EndTime})
			}
			week[i] = schedule.DaySchedule{
				DayOfWeek: day.DayOfWeek,
				Available: day.IsAvailable,
				Slots:     slots,
			}
		}

		sched, err := svc.UpsertSchedule(r.Context(), schedule.UpsertParams{
			ClinicID:     auth.ClinicID,
			DoctorID:     doctorID,
			Context:      schedule.Context(req.ScheduleType),
			LocationName: req.LocationName,
			Timezone:     req.Timezone,
			Week:         week,
			ActorUserID:  auth.UserID,
		})
		if err != nil {
			if errors.Is(err, schedule.ErrDoctorNotFound) {
				writeError(w, http.StatusNotFound, "doctor_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toScheduleResponse(sched))
	}
}

func listSchedulesHandler(svc *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}

		doctorID, err := uuid.Parse(chi.URLParam(r, "doctorID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_doctor_id", "doctorID must be a valid UUID")
			return
		}

		schedules, err := svc.FindActiveSchedules(r.Context(), auth.ClinicID, doctorID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]ScheduleResponse, 0, len(schedules))
		for i := range schedules {
			resp = append(resp, toScheduleResponse(&schedules[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func deactivateScheduleHandler(svc *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}

		doctorID, err := uuid.Parse(chi.URLParam(r, "doctorID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_doctor_id", "doctorID must be a valid UUID")
			return
		}
		sc := schedule.Context(chi.URLParam(r, "context"))
		if !sc.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_context", "context must be clinic or hospital")
			return
		}

		if err := svc.DeactivateSchedule(r.Context(), auth.ClinicID, doctorID, sc); err != nil {
			if errors.Is(err, schedule.ErrScheduleNotFound) {
				writeError(w, http.StatusNotFound, "schedule_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
