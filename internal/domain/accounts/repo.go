package accounts

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// AddressRepository persists one address per user.
type AddressRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Address, error)
	Upsert(ctx context.Context, a *Address) error
}
