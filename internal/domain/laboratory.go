package domain

import "time"

// Laboratory лаборатория
type Laboratory struct {
	ID        int64
	Name      string
	Capacity  int
	Equipment string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
