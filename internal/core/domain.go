package core

import (
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

type (
	// ExpenseRecord is a single spending entry owned by the record source.
	// The query engine reads it and never mutates it.
	ExpenseRecord struct {
		ID            string     `json:"id"`
		Date          civil.Date `json:"date"`
		Time          string     `json:"time"`
		Category      string     `json:"category"`
		Description   string     `json:"description"`
		Amount        Money      `json:"amount"`
		PaymentMethod string     `json:"payment_method"`
		Icon          string     `json:"icon"`
	}
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidTime      = errors.New("invalid time")
)

// Clock layouts accepted for ExpenseRecord.Time.
var clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "03:04 PM"}

// ParseClock parses a clock time string into hours, minutes and seconds.
func ParseClock(s string) (civil.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return civil.TimeOf(t), nil
		}
	}
	return civil.Time{}, ErrInvalidTime
}

// Instant combines Date and Time into a UTC timestamp.
// A time that cannot be parsed counts as midnight.
func (e ExpenseRecord) Instant() time.Time {
	clock, err := ParseClock(e.Time)
	if err != nil {
		clock = civil.Time{}
	}
	return civil.DateTime{Date: e.Date, Time: clock}.In(time.UTC)
}

func (e ExpenseRecord) Validate() error {
	if !e.Date.IsValid() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Time) != "" {
		if _, err := ParseClock(e.Time); err != nil {
			return err
		}
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, ErrInvalidDate
	}
	return d, nil
}

// Today returns the current civil date in the given location.
func Today(loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.Local
	}
	return civil.DateOf(time.Now().In(loc))
}
