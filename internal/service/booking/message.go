package booking

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/romasdental/clinic-portal/internal/model"
)

// ClinicMessage is the text sent to the clinic for a new booking.
func ClinicMessage(clinic string, b *model.Booking) string {
	return fmt.Sprintf("New Appointment Booking!\nBooking ID: #%d\nName: %s\nMobile: %s\nService: %s\nDate: %s\nTime: %s\n\n- %s",
		b.BookingNumber, b.Name, b.Mobile, b.Service, b.Date, b.Time, clinic)
}

// ConfirmationMessage is the text sent to the patient once the booking is
// confirmed.
func ConfirmationMessage(clinic, address string, b *model.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hello %s,\n\n", b.Name)
	fmt.Fprintf(&sb, "Thank you for booking an appointment with %s!\n\n", clinic)
	sb.WriteString("Your Appointment has been *CONFIRMED* ✅\n\n")
	fmt.Fprintf(&sb, "*Booking ID:* #%d\n", b.BookingNumber)
	fmt.Fprintf(&sb, "*Service:* %s\n", b.Service)
	fmt.Fprintf(&sb, "*Date:* %s\n", LongDate(b.Date))
	fmt.Fprintf(&sb, "*Time:* %s\n\n", b.Time)
	if address != "" {
		fmt.Fprintf(&sb, "*Clinic Address:*\n%s\n\n", address)
	}
	sb.WriteString("We look forward to serving you!\n\n")
	fmt.Fprintf(&sb, "- %s Team", clinic)
	return sb.String()
}

// LongDate renders an ISO date as "Wednesday, 3 January 2024". Unparseable
// input is returned unchanged.
func LongDate(date string) string {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return day.Format("Monday, 2 January 2006")
}

// Link builds a click-to-chat address carrying message for number.
func Link(base, countryCode, number, message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("%s/%s%s?text=%s", strings.TrimRight(base, "/"), countryCode, number, text)
}
