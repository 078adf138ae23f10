package application

import (
	"time"

	"cvtrack/internal/common"
)

// HistoryEntry is an immutable audit record of one executed transition.
// Entries are append-only: they are never updated or deleted individually,
// and insertion order is the source-of-truth order for display.
type HistoryEntry struct {
	ID            int64       `json:"id"`
	ApplicationID common.UUID `json:"application_id"`
	Source        Status      `json:"source"`
	Target        Status      `json:"target"`
	Comment       string      `json:"comment,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}
