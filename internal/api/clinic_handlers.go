package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/caredesk/clinic-platform/internal/clinic"
	"github.com/caredesk/clinic-platform/internal/staff"
)

func onboardClinicHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OnboardClinicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := validateOnboardClinic(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_onboarding", err.Error())
			return
		}

		var timing [7]clinic.DayTiming
		for i, day := range req.Timings.Weekly {
			slots := make([]clinic.TimingSlot, 0, len(day.Slots))
			for _, s := range day.Slots {
				slots = append(slots, clinic.TimingSlot{Start: s.StartTime, End: s.EndTime})
			}
			timing[i] = clinic.DayTiming{DayOfWeek: day.DayOfWeek, Open: day.IsOpen, Slots: slots}
		}

		country := req.Clinic.Address.Country
		if country == "" {
			country = "India"
		}

		result, err := svc.Onboard(r.Context(), clinic.OnboardParams{
			Name:           req.Clinic.Name,
			Code:           req.Clinic.Code,
			ContactPhone:   req.Clinic.ContactPhone,
			ContactEmail:   req.Clinic.ContactEmail,
			WhatsAppNumber: req.Clinic.WhatsAppNumber,
			Address: clinic.Address{
				Line1:   req.Clinic.Address.Line1,
				Line2:   req.Clinic.Address.Line2,
				City:    req.Clinic.Address.City,
				State:   req.Clinic.Address.State,
				Country: country,
				Pincode: req.Clinic.Address.Pincode,
			},
			Timezone:    req.Clinic.Timezone,
			Specialties: req.Clinic.Specialties,
			Owner: clinic.OwnerParams{
				FullName: req.Owner.FullName,
				Email:    req.Owner.Email,
				Phone:    req.Owner.Phone,
				Password: req.Owner.Password,
			},
			DefaultDoctor: clinic.DoctorParams{
				FullName:           req.DefaultDoctor.FullName,
				Email:              req.DefaultDoctor.Email,
				Phone:              req.DefaultDoctor.Phone,
				RegistrationNumber: req.DefaultDoctor.RegistrationNumber,
				Specialization:     req.DefaultDoctor.Specialization,
				Qualification:      req.DefaultDoctor.Qualification,
				ConsultationFee:    req.DefaultDoctor.ConsultationFee,
			},
			Timing:         timing,
			TimingTimezone: req.Timings.Timezone,
		})
		if err != nil {
			switch {
			case errors.Is(err, clinic.ErrCodeTaken):
				writeError(w, http.StatusConflict, "clinic_code_taken", err.Error())
			case errors.Is(err, staff.ErrEmailTaken):
				writeError(w, http.StatusConflict, "email_taken", err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusCreated, OnboardClinicResponse{
			ClinicID:        result.Clinic.ID,
			Code:            result.Clinic.Code,
			OwnerID:         result.Owner.ID,
			DefaultDoctorID: result.Doctor.ID,
			DashboardActive: result.Clinic.Settings.DashboardActive,
			CompletedAt:     *result.Clinic.OnboardingCompletedAt,
		})
	}
}

func getClinicHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}

		c, err := svc.GetClinic(r.Context(), auth.ClinicID)
		if err != nil {
			if errors.Is(err, clinic.ErrClinicNotFound) {
				writeError(w, http.StatusNotFound, "clinic_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toClinicResponse(c))
	}
}
