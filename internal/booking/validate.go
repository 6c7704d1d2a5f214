package booking

import (
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9()\-\s]{7,20}$`)
)

type bookingRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

// validate returns every problem with the request at once, so the
// client can surface them together.
func (r bookingRequest) validate(now time.Time) []string {
	var errs []string

	name := strings.TrimSpace(r.Name)
	if len(name) < 2 || len(name) > 100 {
		errs = append(errs, "name must be between 2 and 100 characters")
	}

	if !phonePattern.MatchString(strings.TrimSpace(r.Phone)) {
		errs = append(errs, "invalid phone number")
	}

	if !emailPattern.MatchString(r.Email) || len(r.Email) > 254 {
		errs = append(errs, "invalid email address")
	}

	if r.Service == "" || len(r.Service) > 100 {
		errs = append(errs, "service is required")
	}

	if len(r.Message) > 1000 {
		errs = append(errs, "message too long")
	}

	// Parse in now's location so both midnights share an offset;
	// plain time.Parse yields UTC and rejects same-day bookings on
	// servers west of Greenwich.
	date, err := time.ParseInLocation("2006-01-02", r.Date, now.Location())
	if err != nil {
		errs = append(errs, "date must be YYYY-MM-DD")
		return errs
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		errs = append(errs, "appointment date cannot be in the past")
	}
	if date.After(today.AddDate(0, 3, 0)) {
		errs = append(errs, "appointments can only be booked up to 3 months in advance")
	}

	return errs
}
