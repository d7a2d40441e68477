package booking

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/romasdental/clinic-portal/internal/model"
)

// DateLayout is the calendar date format accepted from the booking form.
const DateLayout = "2006-01-02"

// Rules are the clinic specific checks applied to every submission.
// Dates before Today are rejected; a zero Today skips that check.
type Rules struct {
	ClosedDay time.Weekday
	TimeSlots []string
	Today     time.Time
}

// Today returns the calendar day of now in loc as a UTC midnight, the same
// form Validate parses submitted dates into.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Validate checks every field of req and returns the cleaned request along
// with one message per failed field. An empty services list accepts any
// non-empty service name.
func Validate(req model.BookingRequest, rules Rules, services []string) (model.BookingRequest, map[string]string) {
	errs := make(map[string]string)
	clean := model.BookingRequest{
		Name:    strings.TrimSpace(req.Name),
		Mobile:  NormalizeMobile(req.Mobile),
		Date:    strings.TrimSpace(req.Date),
		Time:    strings.TrimSpace(req.Time),
		Service: strings.TrimSpace(req.Service),
	}

	switch {
	case clean.Name == "":
		errs["name"] = "Name is required"
	case utf8.RuneCountInString(clean.Name) < 2:
		errs["name"] = "Name must be at least 2 characters"
	}

	switch {
	case strings.TrimSpace(req.Mobile) == "":
		errs["mobile"] = "Mobile number is required"
	case !isMobile(clean.Mobile):
		errs["mobile"] = "Please enter a valid 10-digit mobile number"
	}

	if clean.Date == "" {
		errs["date"] = "Please select a date"
	} else if day, err := time.Parse(DateLayout, clean.Date); err != nil {
		errs["date"] = "Please select a valid date"
	} else if !rules.Today.IsZero() && day.Before(rules.Today) {
		errs["date"] = "Please select a valid date"
	} else if day.Weekday() == rules.ClosedDay {
		errs["date"] = fmt.Sprintf("We are closed on %ss. Please select another day", rules.ClosedDay)
	}

	if !contains(rules.TimeSlots, clean.Time) {
		errs["time"] = "Please select a time slot"
	}

	if clean.Service == "" || (len(services) > 0 && !contains(services, clean.Service)) {
		errs["service"] = "Please select a service"
	}

	return clean, errs
}

// NormalizeMobile drops whitespace and hyphens.
func NormalizeMobile(mobile string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, mobile)
}

func isMobile(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	if s == "" {
		return false
	}
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
