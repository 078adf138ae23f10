package app

import (
	"context"
	"net/url"
	"strings"
	"time"

	"cvtrack/internal/common"
	"cvtrack/internal/domain/account"
	"cvtrack/internal/domain/application"
)

const (
	maxJobTitleLength    = 200
	maxCompanyLength     = 200
	maxSourceLength      = 2048
	maxDescriptionLength = 4000
	maxCommentLength     = 1000

	defaultPageSize = 20
	maxPageSize     = 100
)

// sortColumns whitelists the search sort keys.
var sortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"job_title":  true,
	"company":    true,
	"status":     true,
}

// ApplicationService orchestrates the application lifecycle: content
// edits, status transitions, archiving and deletion. Every operation is
// anchored on the caller's account id, and ownership is checked before
// any business rule.
type ApplicationService struct {
	repo     application.Repository
	accounts account.Repository
}

func NewApplicationService(repo application.Repository, accounts account.Repository) *ApplicationService {
	return &ApplicationService{repo: repo, accounts: accounts}
}

// SaveRequest carries the content fields of an application. A nil ID
// creates a new application; otherwise the existing one is updated.
type SaveRequest struct {
	ID          *common.UUID
	JobTitle    string
	Company     string
	Source      *string
	Description *string
}

// TransitionRequest applies one transition to an application.
type TransitionRequest struct {
	ApplicationID common.UUID
	Comment       string
}

func (s *ApplicationService) Get(ctx context.Context, accountID, applicationID common.UUID) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.AccountID != accountID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another account", nil)
	}
	return app, nil
}

func (s *ApplicationService) Search(ctx context.Context, accountID common.UUID, filter application.SearchFilter) (*application.Page, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	filter.SearchTerm = strings.TrimSpace(filter.SearchTerm)
	if filter.Status != nil {
		if _, err := application.ParseStatus(string(*filter.Status)); err != nil {
			return nil, common.NewValidationError("invalid search filter", map[string]string{"status": "unknown status"})
		}
	}
	if filter.Sort != "" && !sortColumns[filter.Sort] {
		return nil, common.NewValidationError("invalid search filter", map[string]string{"sort": "sort must be created_at, updated_at, job_title, company, or status"})
	}
	if filter.SortDirection != "" && filter.SortDirection != application.SortAsc && filter.SortDirection != application.SortDesc {
		return nil, common.NewValidationError("invalid search filter", map[string]string{"sortDirection": "sortDirection must be asc or desc"})
	}
	return s.repo.Search(ctx, accountID, filter)
}

// AvailableTransitions is a pure lookup over the transition table; it is
// empty for terminal statuses.
func (s *ApplicationService) AvailableTransitions(status application.Status) []application.Transition {
	return application.TransitionsFrom(status)
}

func (s *ApplicationService) Save(ctx context.Context, accountID common.UUID, req SaveRequest) (*application.Application, error) {
	if err := validateContent(req); err != nil {
		return nil, err
	}
	if req.ID == nil {
		return s.create(ctx, accountID, req)
	}
	return s.repo.UpdateLocked(ctx, *req.ID, func(app *application.Application) error {
		if app.AccountID != accountID {
			return common.NewError(common.CodeForbidden, "application belongs to another account", nil)
		}
		if app.IsArchived {
			return common.NewError(common.CodeArchived, "archived applications cannot be edited", nil)
		}
		now := time.Now().UTC()
		app.JobTitle = strings.TrimSpace(req.JobTitle)
		app.Company = strings.TrimSpace(req.Company)
		app.Source = req.Source
		app.Description = req.Description
		app.UpdatedAt = &now
		return nil
	})
}

func (s *ApplicationService) create(ctx context.Context, accountID common.UUID, req SaveRequest) (*application.Application, error) {
	owner, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	app := application.Application{
		AccountID:   owner.ID,
		JobTitle:    strings.TrimSpace(req.JobTitle),
		Company:     strings.TrimSpace(req.Company),
		Source:      req.Source,
		Description: req.Description,
		Status:      application.StatusUnsent,
	}
	return s.repo.Create(ctx, app)
}

func (s *ApplicationService) Transition(ctx context.Context, accountID common.UUID, transitionID int, req TransitionRequest) (*application.Application, error) {
	transition, ok := application.TransitionByID(transitionID)
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "transition not found", nil)
	}
	comment := strings.TrimSpace(req.Comment)
	if len(comment) > maxCommentLength {
		return nil, common.NewValidationError("invalid transition request", map[string]string{"comment": "comment must be at most 1000 characters"})
	}
	// Legality is checked against the same locked read the write uses, so
	// two concurrent transitions cannot both observe the old status.
	return s.repo.UpdateLocked(ctx, req.ApplicationID, func(app *application.Application) error {
		if app.AccountID != accountID {
			return common.NewError(common.CodeForbidden, "application belongs to another account", nil)
		}
		if !transitionAllowed(transition, app.Status) {
			return common.NewError(common.CodeTransitionNotAllowed, "transition is not allowed from status "+string(app.Status), nil)
		}
		now := time.Now().UTC()
		app.History = append(app.History, application.HistoryEntry{
			ApplicationID: app.ID,
			Source:        app.Status,
			Target:        transition.To,
			Comment:       comment,
			CreatedAt:     now,
		})
		app.Status = transition.To
		app.UpdatedAt = &now
		return nil
	})
}

func (s *ApplicationService) Archive(ctx context.Context, accountID, applicationID common.UUID) error {
	_, err := s.repo.UpdateLocked(ctx, applicationID, func(app *application.Application) error {
		if app.AccountID != accountID {
			return common.NewError(common.CodeForbidden, "application belongs to another account", nil)
		}
		if app.IsArchived {
			return nil
		}
		if len(application.TransitionsFrom(app.Status)) > 0 {
			return common.NewError(common.CodeArchiveOpen, "applications with pending transitions cannot be archived", nil)
		}
		now := time.Now().UTC()
		app.IsArchived = true
		app.UpdatedAt = &now
		return nil
	})
	return err
}

func (s *ApplicationService) Delete(ctx context.Context, accountID, applicationID common.UUID) error {
	if _, err := s.Get(ctx, accountID, applicationID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, applicationID)
}

// Stats counts the caller's applications grouped by current status.
// Archived applications are included; the catalog is zero-filled so
// dashboards always see every status.
func (s *ApplicationService) Stats(ctx context.Context, accountID common.UUID) (map[application.Status]int, error) {
	counts, err := s.repo.CountByStatus(ctx, accountID)
	if err != nil {
		return nil, err
	}
	stats := make(map[application.Status]int, len(application.Statuses()))
	for _, status := range application.Statuses() {
		stats[status] = counts[status]
	}
	return stats, nil
}

func transitionAllowed(transition application.Transition, from application.Status) bool {
	for _, candidate := range application.TransitionsFrom(from) {
		if candidate.ID == transition.ID {
			return true
		}
	}
	return false
}

// validateContent checks every content field and collects all violations
// before failing.
func validateContent(req SaveRequest) error {
	fields := map[string]string{}
	jobTitle := strings.TrimSpace(req.JobTitle)
	if jobTitle == "" {
		fields["job_title"] = "job title is required"
	} else if len(jobTitle) > maxJobTitleLength {
		fields["job_title"] = "job title must be at most 200 characters"
	}
	company := strings.TrimSpace(req.Company)
	if company == "" {
		fields["company"] = "company is required"
	} else if len(company) > maxCompanyLength {
		fields["company"] = "company must be at most 200 characters"
	}
	if req.Source != nil {
		if len(*req.Source) > maxSourceLength {
			fields["source"] = "source must be at most 2048 characters"
		} else if !isValidURL(*req.Source) {
			fields["source"] = "source must be a valid URL"
		}
	}
	if req.Description != nil && len(*req.Description) > maxDescriptionLength {
		fields["description"] = "description must be at most 4000 characters"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid application", fields)
	}
	return nil
}

func isValidURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
