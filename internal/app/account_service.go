package app

import (
	"context"

	"cvtrack/internal/common"
	"cvtrack/internal/domain/account"
)

// AccountService is the read side of the owner directory.
type AccountService struct {
	repo account.Repository
}

func NewAccountService(repo account.Repository) *AccountService {
	return &AccountService{repo: repo}
}

func (s *AccountService) Get(ctx context.Context, id common.UUID) (*account.Account, error) {
	return s.repo.GetByID(ctx, id)
}
