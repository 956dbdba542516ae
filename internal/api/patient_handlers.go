package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/caredesk/clinic-platform/internal/patient"
)

func registerPatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}

		var req RegisterPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := validateRegisterPatient(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient", err.Error())
			return
		}

		var dob *time.Time
		if req.DateOfBirth != "" {
			parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_date_of_birth", "date_of_birth must be YYYY-MM-DD")
				return
			}
			dob = &parsed
		}

		p, err := svc.Register(r.Context(), patient.RegisterParams{
			ClinicID:       auth.ClinicID,
			Code:           req.Code,
			FullName:       req.FullName,
			Gender:         patient.Gender(req.Gender),
			DateOfBirth:    dob,
			BloodGroup:     req.BloodGroup,
			Phone:          req.Phone,
			WhatsAppNumber: req.WhatsAppNumber,
			Email:          req.Email,
			Allergies:      req.Allergies,
		})
		if err != nil {
			if errors.Is(err, patient.ErrCodeTaken) {
				writeError(w, http.StatusConflict, "patient_code_taken", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

func getPatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		p, err := svc.GetPatient(r.Context(), auth.ClinicID, id)
		if err != nil {
			if errors.Is(err, patient.ErrPatientNotFound) {
				writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func listPatientsHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		patients, err := svc.ListPatients(r.Context(), auth.ClinicID, limit, offset)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]PatientResponse, 0, len(patients))
		for i := range patients {
			resp = append(resp, toPatientResponse(&patients[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func deactivatePatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		if err := svc.DeactivatePatient(r.Context(), auth.ClinicID, id); err != nil {
			if errors.Is(err, patient.ErrPatientNotFound) {
				writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
