package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cvtrack/internal/common"
	"cvtrack/internal/domain/application"
)

const applicationColumns = `id, account_id, job_title, company, source, description, status, is_archived, created_at, updated_at`

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	app.CreatedAt = time.Now().UTC()
	app.UpdatedAt = nil
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (id, account_id, job_title, company, source, description, status, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		app.ID, app.AccountID, app.JobTitle, app.Company, app.Source, app.Description, app.Status, app.IsArchived, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	app, err := scanApplication(r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	history, err := r.listHistory(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	app.History = history
	return app, nil
}

// UpdateLocked reads the application row FOR UPDATE, applies fn, and
// persists the row plus any appended history entries in one transaction.
// The legality checks fn performs therefore see the same state the write
// is based on.
func (r *ApplicationRepository) UpdateLocked(ctx context.Context, id common.UUID, fn func(app *application.Application) error) (*application.Application, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	app, err := scanApplication(tx.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}
	history, err := r.listHistory(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	app.History = history

	if err := fn(app); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `UPDATE applications
		SET job_title = $1, company = $2, source = $3, description = $4, status = $5, is_archived = $6, updated_at = $7
		WHERE id = $8`,
		app.JobTitle, app.Company, app.Source, app.Description, app.Status, app.IsArchived, app.UpdatedAt, app.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	for i := range app.History {
		entry := &app.History[i]
		if entry.ID != 0 {
			continue
		}
		err = tx.QueryRowContext(ctx, `INSERT INTO application_history (application_id, source, target, comment, created_at)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			entry.ApplicationID, entry.Source, entry.Target, entry.Comment, entry.CreatedAt).Scan(&entry.ID)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to append history entry", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to commit application update", err)
	}
	return app, nil
}

// Delete removes the application and its entire history ledger. The
// cascade is explicit rather than left to the schema alone.
func (r *ApplicationRepository) Delete(ctx context.Context, id common.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM application_history WHERE application_id = $1`, id); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application history", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	if err := tx.Commit(); err != nil {
		return common.NewError(common.CodeInternal, "failed to commit application delete", err)
	}
	return nil
}

func (r *ApplicationRepository) Search(ctx context.Context, accountID common.UUID, filter application.SearchFilter) (*application.Page, error) {
	where := []string{"account_id = $1"}
	args := []any{accountID}
	if !filter.IncludeArchived {
		where = append(where, "is_archived = FALSE")
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.SearchTerm != "" {
		args = append(args, "%"+filter.SearchTerm+"%")
		where = append(where, fmt.Sprintf("(job_title ILIKE $%d OR company ILIKE $%d)", len(args), len(args)))
	}
	condition := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications WHERE `+condition, args...).Scan(&total); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications", err)
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		applicationColumns, condition, orderClause(filter), len(args)-1, len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to search applications", err)
	}
	defer rows.Close()

	items := make([]application.Application, 0, filter.PageSize)
	for rows.Next() {
		var app application.Application
		if err := rows.Scan(&app.ID, &app.AccountID, &app.JobTitle, &app.Company, &app.Source, &app.Description, &app.Status, &app.IsArchived, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, app)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to iterate applications", err)
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + filter.PageSize - 1) / filter.PageSize
	}
	return &application.Page{
		Items:      items,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, accountID common.UUID) (map[application.Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM applications WHERE account_id = $1 GROUP BY status`, accountID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications by status", err)
	}
	defer rows.Close()
	counts := make(map[application.Status]int)
	for rows.Next() {
		var status application.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan status count", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to iterate status counts", err)
	}
	return counts, nil
}

func (r *ApplicationRepository) listHistory(ctx context.Context, q querier, applicationID common.UUID) ([]application.HistoryEntry, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, application_id, source, target, comment, created_at
		FROM application_history WHERE application_id = $1 ORDER BY id`, applicationID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to load application history", err)
	}
	defer rows.Close()
	var entries []application.HistoryEntry
	for rows.Next() {
		var entry application.HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.ApplicationID, &entry.Source, &entry.Target, &entry.Comment, &entry.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan history entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to iterate history entries", err)
	}
	return entries, nil
}

func scanApplication(row *sql.Row) (*application.Application, error) {
	var app application.Application
	err := row.Scan(&app.ID, &app.AccountID, &app.JobTitle, &app.Company, &app.Source, &app.Description, &app.Status, &app.IsArchived, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

// orderClause maps the whitelisted sort keys (validated by the service)
// to columns. The default order puts recently touched applications first;
// never-updated rows sort by creation time.
func orderClause(filter application.SearchFilter) string {
	if filter.Sort == "" {
		return "updated_at DESC NULLS LAST, created_at DESC"
	}
	direction := "ASC"
	if filter.SortDirection == application.SortDesc {
		direction = "DESC"
	}
	return filter.Sort + " " + direction
}
