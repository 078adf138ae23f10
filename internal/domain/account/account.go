package account

import (
	"time"

	"cvtrack/internal/common"
)

type Status string

const (
	StatusActive Status = "active"
	StatusLocked Status = "locked"
)

type Account struct {
	ID        common.UUID `json:"id"`
	Email     string      `json:"email"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
