package account

import (
	"context"

	"cvtrack/internal/common"
)

type Repository interface {
	GetByID(ctx context.Context, id common.UUID) (*Account, error)
}
