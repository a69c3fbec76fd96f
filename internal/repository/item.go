package repository

import (
	"context"

	"item-store/internal/domain"
)

// ItemRepository exposes persistence operations for Item entities.
type ItemRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, item *domain.Item) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	// GetByOwnerAndID combines the existence and ownership checks in one lookup.
	GetByOwnerAndID(ctx context.Context, ownerID, id int64) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error)
	// SearchByName matches items whose name contains term, case-insensitively.
	SearchByName(ctx context.Context, term string) ([]domain.Item, error)
	// ListPage returns one page of items ordered by id plus the total row count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Item, int64, error)
	Update(ctx context.Context, id int64, patch domain.ItemPatch) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
