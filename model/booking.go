package model

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// ParseStatus accepts the wire form of a booking status.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(s)) {
	case StatusWaiting:
		return StatusWaiting, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

type Booking struct {
	ID       int64     `json:"id" db:"id"`
	Start    time.Time `json:"start" db:"start_date"`
	End      time.Time `json:"end" db:"end_date"`
	ItemID   int64     `json:"item_id" db:"item_id"`
	BookerID int64     `json:"booker_id" db:"booker_id"`
	Status   Status    `json:"status" db:"status"`
}

// State selects a slice of a user's bookings when listing: either a
// temporal bucket relative to now, or a plain status match.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState maps the ?state= query value onto a State. An empty value
// means ALL.
func ParseState(s string) (State, error) {
	if s == "" {
		return StateAll, nil
	}
	switch State(strings.ToUpper(s)) {
	case StateAll:
		return StateAll, nil
	case StateCurrent:
		return StateCurrent, nil
	case StatePast:
		return StatePast, nil
	case StateFuture:
		return StateFuture, nil
	case StateWaiting:
		return StateWaiting, nil
	case StateRejected:
		return StateRejected, nil
	}
	return "", fmt.Errorf("unknown state %q", s)
}
