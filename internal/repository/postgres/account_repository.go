package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cvtrack/internal/common"
	"cvtrack/internal/domain/account"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByID(ctx context.Context, id common.UUID) (*account.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, email, status, created_at FROM accounts WHERE id = $1`, id)
	var acc account.Account
	if err := row.Scan(&acc.ID, &acc.Email, &acc.Status, &acc.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "account not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load account", err)
	}
	return &acc, nil
}
