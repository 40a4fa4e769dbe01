package usermock

import (
	"context"

	domain "peerlend-api/internal/domain/user"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies user.Repository.
type Repo struct {
	CreateFn     func(ctx context.Context, u *domain.User) error
	GetByIDFn    func(ctx context.Context, id uint64) (*domain.User, error)
	GetByIDsFn   func(ctx context.Context, ids []uint64) (map[uint64]domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.User, error) {
	if m.GetByIDsFn != nil {
		return m.GetByIDsFn(ctx, ids)
	}
	return map[uint64]domain.User{}, nil
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

// Fixed returns a mock backed by a static set of users, keyed by id.
func Fixed(users ...domain.User) *Repo {
	byID := make(map[uint64]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*domain.User, error) {
			if u, ok := byID[id]; ok {
				return &u, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		GetByIDsFn: func(ctx context.Context, ids []uint64) (map[uint64]domain.User, error) {
			out := make(map[uint64]domain.User, len(ids))
			for _, id := range ids {
				if u, ok := byID[id]; ok {
					out[id] = u
				}
			}
			return out, nil
		},
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			for _, u := range byID {
				if u.Email == email {
					return &u, nil
				}
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
}
