package whatsapp

import "fmt"

// Template codes recorded on queued replies so the sender side can map them
// to approved WhatsApp templates.
const (
	TemplateAutoReplyOpen   = "AUTO_REPLY_OPEN"
	TemplateAutoReplyClosed = "AUTO_REPLY_CLOSED"
	TemplateInvalidBooking  = "INVALID_BOOKING_FORMAT"
	TemplateConfirmation    = "APPOINTMENT_CONFIRMATION"
)

const bookingFormatHint = "BOOK|PATIENT:<patientId>|DOCTOR:<doctorId>|DATE:YYYY-MM-DD|START:HH:MM|END:HH:MM|REASON:<text>"

func openAutoReply(clinicName string) string {
	return fmt.Sprintf("Welcome to %s.\nPlease send booking message in format:\n%s", clinicName, bookingFormatHint)
}

func closedAutoReply(clinicName, nextOpenText string) string {
	next := ""
	if nextOpenText != "" {
		next = fmt.Sprintf("Next opening: %s. ", nextOpenText)
	}
	return fmt.Sprintf("%s is currently closed. %s\nYou can still send booking request and we will process it.", clinicName, next)
}

func invalidBookingReply() string {
	return "Invalid booking format. Use: " + bookingFormatHint
}

func confirmationReply(clinicName, date, start, end, contextLabel string) string {
	return fmt.Sprintf("Appointment confirmed at %s.\nDate: %s\nTime: %s-%s\nContext: %s", clinicName, date, start, end, contextLabel)
}
