package whatsapp

import "strings"

// BookingRequest is a parsed BOOK message. IDs are raw strings here; they
// are validated as UUIDs by the service before booking.
type BookingRequest struct {
	PatientID string
	DoctorID  string
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Reason    string
}

// ParseBookingMessage parses the structured booking format
//
//	BOOK|PATIENT:<id>|DOCTOR:<id>|DATE:YYYY-MM-DD|START:HH:MM|END:HH:MM|REASON:<text>
//
// and returns nil for anything that does not carry the five required fields.
func ParseBookingMessage(messageText string) *BookingRequest {
	text := strings.TrimSpace(messageText)
	if !strings.HasPrefix(strings.ToUpper(text), "BOOK|") {
		return nil
	}

	fields := map[string]string{}
	for _, part := range strings.Split(text, "|")[1:] {
		idx := strings.Index(part, ":")
		if idx == -1 {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(part[:idx]))
		fields[key] = strings.TrimSpace(part[idx+1:])
	}

	if fields["PATIENT"] == "" || fields["DOCTOR"] == "" || fields["DATE"] == "" ||
		fields["START"] == "" || fields["END"] == "" {
		return nil
	}

	reason := fields["REASON"]
	if reason == "" {
		reason = "Booked via WhatsApp"
	}

	return &BookingRequest{
		PatientID: fields["PATIENT"],
		DoctorID:  fields["DOCTOR"],
		Date:      fields["DATE"],
		StartTime: fields["START"],
		EndTime:   fields["END"],
		Reason:    reason,
	}
}
