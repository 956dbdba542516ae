package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/caredesk/clinic-platform/internal/staff"
)

func createStaffHandler(svc *staff.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}
		if auth.Role != string(staff.RoleOwner) {
			writeError(w, http.StatusForbidden, "forbidden", "only the clinic owner can create staff")
			return
		}

		var req CreateStaffRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := validateCreateStaff(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_staff", err.Error())
			return
		}

		var profile *staff.DoctorProfile
		if req.Role == string(staff.RoleDoctor) {
			profile = &staff.DoctorProfile{
				RegistrationNumber: req.RegistrationNumber,
				Specialization:     req.Specialization,
				Qualification:      req.Qualification,
				ConsultationFee:    req.ConsultationFee,
			}
		}

		u, err := svc.CreateUser(r.Context(), staff.CreateUserParams{
			ClinicID:      auth.ClinicID,
			FullName:      req.FullName,
			Email:         req.Email,
			Phone:         req.Phone,
			Password:      req.Password,
			Role:          staff.Role(req.Role),
			DoctorProfile: profile,
			Permissions:   req.Permissions,
		})
		if err != nil {
			if errors.Is(err, staff.ErrEmailTaken) {
				writeError(w, http.StatusConflict, "email_taken", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusCreated, toStaffResponse(u))
	}
}

func getStaffHandler(svc *staff.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_user_id", "id must be a valid UUID")
			return
		}

		u, err := svc.GetUser(r.Context(), auth.ClinicID, id)
		if err != nil {
			if errors.Is(err, staff.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "user_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toStaffResponse(u))
	}
}

func listDoctorsHandler(svc *staff.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}

		doctors, err := svc.ListDoctors(r.Context(), auth.ClinicID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]StaffResponse, 0, len(doctors))
		for i := range doctors {
			resp = append(resp, toStaffResponse(&doctors[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
