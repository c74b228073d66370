package usecase

import (
	"context"
	"fmt"
	"sync"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"

	"github.com/google/uuid"
)

// memUserRepo mimics the users table including its unique email index.
type memUserRepo struct {
	mu       sync.Mutex
	byEmail  map[string]*entity.User
	findErr  error
	creates  int
	lookups  []string
	skipScan bool // behave as if the duplicate slipped past the pre-check
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*entity.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[user.Email]; ok {
		return fmt.Errorf("create user %s: %w", user.Email, repository.ErrDuplicateEmail)
	}
	cp := *user
	m.byEmail[user.Email] = &cp
	m.creates++
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups = append(m.lookups, email)
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.skipScan {
		return nil, nil
	}
	u, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type memCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
	existsErr  error
}

func newMemCategoryRepo(categories ...*entity.Category) *memCategoryRepo {
	m := &memCategoryRepo{categories: map[uuid.UUID]*entity.Category{}}
	for _, c := range categories {
		m.categories[c.ID] = c
	}
	return m
}

func (m *memCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	m.categories[category.ID] = category
	return nil
}

func (m *memCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return m.categories[id], nil
}

func (m *memCategoryRepo) FindAll(ctx context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCategoryRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.categories[id]
	return ok, nil
}

type memProductRepo struct {
	products []*entity.Product
}

func (m *memProductRepo) Create(ctx context.Context, product *entity.Product) error {
	m.products = append(m.products, product)
	return nil
}

func (m *memProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memProductRepo) FindAll(ctx context.Context, limit, offset int, categoryID *uuid.UUID) ([]*entity.Product, error) {
	var filtered []*entity.Product
	for _, p := range m.products {
		if categoryID == nil || p.CategoryID == *categoryID {
			filtered = append(filtered, p)
		}
	}
	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (m *memProductRepo) CountAll(ctx context.Context, categoryID *uuid.UUID) (int64, error) {
	var n int64
	for _, p := range m.products {
		if categoryID == nil || p.CategoryID == *categoryID {
			n++
		}
	}
	return n, nil
}
