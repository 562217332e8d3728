package core

import (
	"errors"

	"cloud.google.com/go/civil"
)

var ErrAccountClosed = errors.New("account already closed")

// AccountState is the cash position for one business day.
// IsClosed is terminal: once set it is never cleared.
type AccountState struct {
	Date              civil.Date `json:"date"`
	StartingCash      Money      `json:"starting_cash"`
	TodayStartingCash Money      `json:"today_starting_cash"`
	IsClosed          bool       `json:"is_closed"`
}

// CanCloseCash reports whether the close-cash action is available.
func (a AccountState) CanCloseCash() bool { return !a.IsClosed }

// Close marks the day closed.
func (a *AccountState) Close() error {
	if a.IsClosed {
		return ErrAccountClosed
	}
	a.IsClosed = true
	return nil
}
