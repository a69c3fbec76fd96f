package service

import (
	"context"
	"strings"
	"time"

	"item-store/internal/domain"
	"item-store/internal/repository"
)

// In-memory repository fakes keep the service tests free of a real database.

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Init(context.Context) error { return nil }

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return 0, repository.ErrDuplicate
		}
	}
	r.nextID++
	user.ID = r.nextID
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.users[user.ID] = &stored
	return user.ID, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	t := at
	u.LastLogin = &t
	u.UpdatedAt = at
	return nil
}

func (r *fakeUserRepo) Count(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeItemRepo struct {
	nextID int64
	items  []domain.Item
}

func newFakeItemRepo() *fakeItemRepo { return &fakeItemRepo{} }

func (r *fakeItemRepo) Init(context.Context) error { return nil }

func (r *fakeItemRepo) Create(_ context.Context, item *domain.Item) (int64, error) {
	r.nextID++
	item.ID = r.nextID
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items = append(r.items, *item)
	return item.ID, nil
}

func (r *fakeItemRepo) find(id int64) (int, bool) {
	for i := range r.items {
		if r.items[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (r *fakeItemRepo) GetByID(_ context.Context, id int64) (*domain.Item, error) {
	if i, ok := r.find(id); ok {
		clone := r.items[i]
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeItemRepo) GetByOwnerAndID(_ context.Context, ownerID, id int64) (*domain.Item, error) {
	if i, ok := r.find(id); ok && r.items[i].OwnerID == ownerID {
		clone := r.items[i]
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeItemRepo) List(context.Context) ([]domain.Item, error) {
	return append([]domain.Item(nil), r.items...), nil
}

func (r *fakeItemRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.Item, error) {
	var out []domain.Item
	for _, it := range r.items {
		if it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) SearchByName(_ context.Context, term string) ([]domain.Item, error) {
	var out []domain.Item
	for _, it := range r.items {
		if strings.Contains(strings.ToLower(it.Name), strings.ToLower(term)) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) ListPage(_ context.Context, page, pageSize int) ([]domain.Item, int64, error) {
	total := int64(len(r.items))
	start := (page - 1) * pageSize
	if start >= len(r.items) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(r.items) {
		end = len(r.items)
	}
	return append([]domain.Item(nil), r.items[start:end]...), total, nil
}

func (r *fakeItemRepo) Update(_ context.Context, id int64, patch domain.ItemPatch) error {
	i, ok := r.find(id)
	if !ok {
		return repository.ErrNotFound
	}
	it := &r.items[i]
	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.Price != nil {
		it.Price = *patch.Price
	}
	if patch.Category != nil {
		it.Category = *patch.Category
	}
	it.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id int64) error {
	i, ok := r.find(id)
	if !ok {
		return repository.ErrNotFound
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *fakeItemRepo) Count(context.Context) (int64, error) {
	return int64(len(r.items)), nil
}
