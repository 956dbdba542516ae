package api

import (
	"encoding/json"
	"net/http"

	"github.com/caredesk/clinic-platform/internal/whatsapp"
)

// The webhook is called by the WhatsApp provider, not by authenticated
// staff, so it sits outside the auth middleware.
func whatsappWebhookHandler(svc *whatsapp.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WhatsAppWebhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if req.From == "" || req.To == "" {
			writeError(w, http.StatusBadRequest, "invalid_webhook", "from and to are required")
			return
		}

		result, err := svc.HandleInbound(r.Context(), whatsapp.InboundMessage{
			From: req.From,
			To:   req.To,
			Text: req.Text,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := WhatsAppWebhookResponse{Status: result.Status, Reply: result.Reply}
		if result.Status == "booked" {
			resp.AppointmentID = result.AppointmentID.String()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
