package api

import (
	"net/http"
	"strconv"

	"github.com/caredesk/clinic-platform/internal/notification"
)

func listNotificationsHandler(svc *notification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuth(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing caller identity")
			return
		}

		status := notification.Status(r.URL.Query().Get("status"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		items, err := svc.ListByClinic(r.Context(), auth.ClinicID, status, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]NotificationResponse, 0, len(items))
		for _, n := range items {
			resp = append(resp, NotificationResponse{
				ID:        n.ID,
				Type:      n.Type,
				Channel:   n.Channel,
				Recipient: n.Recipient,
				Status:    n.Status,
				CreatedAt: n.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
