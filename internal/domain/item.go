package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a sellable item owned by exactly one user.
type Item struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemPatch carries a partial update. Nil fields are left untouched.
type ItemPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
}

// Empty reports whether the patch would change nothing.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Category == nil
}
