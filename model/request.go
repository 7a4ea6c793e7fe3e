package model

import "time"

// Request is a "wanted item" posting, distinct from a booking request.
type Request struct {
	ID          int64     `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	RequestorID int64     `json:"requestor_id" db:"requestor_id"`
	Created     time.Time `json:"created" db:"created"`
}
