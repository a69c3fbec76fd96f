package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"item-store/internal/domain"
	"item-store/internal/repository"
)

const createItemsTable = `
CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	owner_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const createItemsOwnerIndex = `
CREATE INDEX IF NOT EXISTS idx_items_owner ON items(owner_id);
`

var itemColumns = []string{
	"id", "name", "description", "price", "category",
	"owner_id", "created_at", "updated_at",
}

type ItemRepository struct {
	db    *sql.DB
	items entity[domain.Item]
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &ItemRepository{
		db: db,
		items: entity[domain.Item]{
			table:   "items",
			columns: itemColumns,
			scan:    scanItem,
		},
	}
}

func (r *ItemRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createItemsTable); err != nil {
		return fmt.Errorf("create items table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createItemsOwnerIndex); err != nil {
		return fmt.Errorf("create items owner index: %w", err)
	}
	return nil
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (int64, error) {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	item.Price = item.Price.Round(2)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO items (name, description, price, category, owner_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.Name,
		item.Description,
		item.Price.StringFixed(2),
		item.Category,
		item.OwnerID,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("item last insert id: %w", err)
	}
	item.ID = id
	return id, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	return r.items.findByID(ctx, r.db, id)
}

func (r *ItemRepository) GetByOwnerAndID(ctx context.Context, ownerID, id int64) (*domain.Item, error) {
	row := r.db.QueryRowContext(ctx,
		r.items.selectClause()+" WHERE id = ? AND owner_id = ?", id, ownerID)
	return r.items.scanOne(row)
}

func (r *ItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	return r.items.queryMany(ctx, r.db, "ORDER BY id")
}

func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	return r.items.queryMany(ctx, r.db, "WHERE owner_id = ? ORDER BY id", ownerID)
}

func (r *ItemRepository) SearchByName(ctx context.Context, term string) ([]domain.Item, error) {
	// instr over lowered text gives a case-insensitive contains match without
	// LIKE wildcard escaping concerns.
	return r.items.queryMany(ctx, r.db,
		"WHERE instr(lower(name), lower(?)) > 0 ORDER BY id", term)
}

func (r *ItemRepository) ListPage(ctx context.Context, page, pageSize int) ([]domain.Item, int64, error) {
	total, err := r.items.count(ctx, r.db)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	items, err := r.items.queryMany(ctx, r.db,
		"ORDER BY id LIMIT ? OFFSET ?", pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ItemRepository) Update(ctx context.Context, id int64, patch domain.ItemPatch) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, patch.Price.Round(2).StringFixed(2))
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	query := fmt.Sprintf("UPDATE items SET %s WHERE id = ?", strings.Join(sets, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	return r.items.deleteByID(ctx, r.db, id)
}

func (r *ItemRepository) Count(ctx context.Context) (int64, error) {
	return r.items.count(ctx, r.db)
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var (
		item     domain.Item
		priceRaw string
	)
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&priceRaw,
		&item.Category,
		&item.OwnerID,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(priceRaw)
	if err != nil {
		return nil, fmt.Errorf("parse item price %q: %w", priceRaw, err)
	}
	item.Price = price
	return &item, nil
}
