package model

type Item struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Available   bool   `json:"available" db:"available"`
	OwnerID     int64  `json:"owner_id" db:"owner_id"`
	RequestID   *int64 `json:"request_id,omitempty" db:"request_id"`
}
