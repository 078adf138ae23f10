package application

import (
	"context"
	"time"

	"cvtrack/internal/common"
)

// Application is the tracked job application. History is owned
// exclusively: deleting the application deletes its entries.
type Application struct {
	ID          common.UUID    `json:"id"`
	AccountID   common.UUID    `json:"account_id"`
	JobTitle    string         `json:"job_title"`
	Company     string         `json:"company"`
	Source      *string        `json:"source,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      Status         `json:"status"`
	IsArchived  bool           `json:"is_archived"`
	History     []HistoryEntry `json:"history,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
}

// AvailableTransitions returns the legal moves from the current status.
func (a *Application) AvailableTransitions() []Transition {
	return TransitionsFrom(a.Status)
}

// SortDirection for search results.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SearchFilter narrows and orders an account's applications.
type SearchFilter struct {
	Page            int
	PageSize        int
	SearchTerm      string
	Status          *Status
	IncludeArchived bool
	Sort            string
	SortDirection   SortDirection
}

// Page is one page of search results.
type Page struct {
	Items      []Application `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalItems int           `json:"total_items"`
	TotalPages int           `json:"total_pages"`
}

// Repository is the persistence port for applications and their history.
type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	// UpdateLocked loads the application under a row lock, applies fn to
	// the freshly read aggregate, and persists the mutated row together
	// with any history entries fn appended — all in one transaction. If
	// fn returns an error nothing is written.
	UpdateLocked(ctx context.Context, id common.UUID, fn func(app *Application) error) (*Application, error)
	Delete(ctx context.Context, id common.UUID) error
	Search(ctx context.Context, accountID common.UUID, filter SearchFilter) (*Page, error)
	CountByStatus(ctx context.Context, accountID common.UUID) (map[Status]int, error)
}
