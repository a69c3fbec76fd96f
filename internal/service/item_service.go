package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"item-store/internal/domain"
	"item-store/internal/repository"
)

var (
	// ErrItemNotFound covers both a missing item and an item owned by someone
	// else, so an existence probe against another user's items learns nothing.
	ErrItemNotFound = errors.New("item not found")
	// ErrEmptyPatch is returned when an update carries no fields.
	ErrEmptyPatch = errors.New("no fields to update")
	// ErrNegativePrice is returned when a price below zero reaches the service.
	ErrNegativePrice = errors.New("price must not be negative")
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// CreateItemInput carries the fields accepted when creating an item.
type CreateItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
}

// Page is one slice of the item listing plus pagination metadata.
type Page struct {
	Items      []domain.Item
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

// ItemService coordinates item operations backed by the item repository.
type ItemService interface {
	List(ctx context.Context) ([]domain.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error)
	Search(ctx context.Context, term string) ([]domain.Item, error)
	ListPage(ctx context.Context, page, pageSize int) (*Page, error)
	Get(ctx context.Context, id int64) (*domain.Item, error)
	Create(ctx context.Context, input CreateItemInput, ownerID int64) (*domain.Item, error)
	Update(ctx context.Context, id int64, patch domain.ItemPatch, ownerID int64) (*domain.Item, error)
	Delete(ctx context.Context, id, ownerID int64) error
}

type itemService struct {
	items repository.ItemRepository
}

func NewItemService(items repository.ItemRepository) ItemService {
	return &itemService{items: items}
}

func (s *itemService) List(ctx context.Context) ([]domain.Item, error) {
	return s.items.List(ctx)
}

func (s *itemService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	return s.items.ListByOwner(ctx, ownerID)
}

func (s *itemService) Search(ctx context.Context, term string) ([]domain.Item, error) {
	return s.items.SearchByName(ctx, strings.TrimSpace(term))
}

func (s *itemService) ListPage(ctx context.Context, page, pageSize int) (*Page, error) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, total, err := s.items.ListPage(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &Page{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *itemService) Get(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) Create(ctx context.Context, input CreateItemInput, ownerID int64) (*domain.Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	if input.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	item := &domain.Item{
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		OwnerID:     ownerID,
	}

	if _, err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) Update(ctx context.Context, id int64, patch domain.ItemPatch, ownerID int64) (*domain.Item, error) {
	if patch.Empty() {
		return nil, ErrEmptyPatch
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	// existence and ownership verified together; a non-owner sees the same
	// not-found as a missing id
	if _, err := s.items.GetByOwnerAndID(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if err := s.items.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *itemService) Delete(ctx context.Context, id, ownerID int64) error {
	if _, err := s.items.GetByOwnerAndID(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}
