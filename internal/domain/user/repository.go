package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint64) (*User, error)
	// GetByIDs returns the users it finds, keyed by id; missing ids are
	// simply absent from the map.
	GetByIDs(ctx context.Context, ids []uint64) (map[uint64]User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
