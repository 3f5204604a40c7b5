// Package notify sends the appointment inquiry emails.
package notify

import (
	"errors"
	"time"
)

var ErrMissingFields = errors.New("notify: missing required fields")

// AppointmentRequest is the payload of the appointment form.
type AppointmentRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	Message         string `json:"message"`
	AppointmentDate string `json:"appointmentDate,omitempty"`
	Timestamp       string `json:"timestamp"`
}

// Validate requires first name, last name, email and message to be
// non-empty. Whitespace counts as a value.
func (r AppointmentRequest) Validate() error {
	for _, v := range []string{r.FirstName, r.LastName, r.Email, r.Message} {
		if v == "" {
			return ErrMissingFields
		}
	}
	return nil
}

// SubmittedAt renders the timestamp in Lithuanian local time. Values that
// are not RFC 3339 are shown as given.
func (r AppointmentRequest) SubmittedAt() string {
	t, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return r.Timestamp
	}
	return t.In(vilnius).Format("2006-01-02 15:04:05")
}

var vilnius = loadLocation("Europe/Vilnius")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
