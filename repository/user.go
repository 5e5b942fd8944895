package repository

import (
	"context"

	"github.com/userbase/backend/domain"
)

// CreateUserParams carries the columns written when inserting a user. The
// plaintext password is hashed by the service layer before it reaches any
// repository implementation.
type CreateUserParams struct {
	Email          string
	HashedPassword string
	FullName       string
	IsActive       bool
	IsSuperuser    bool
}

// UpdateUserParams carries a partial update. Nil pointers mean "field not
// sent" and leave the stored value untouched; non-nil pointers overwrite it.
type UpdateUserParams struct {
	Email          *string
	HashedPassword *string
	FullName       *string
	IsActive       *bool
	IsSuperuser    *bool
}

// Empty reports whether the update carries no assignments.
func (p UpdateUserParams) Empty() bool {
	return p.Email == nil && p.HashedPassword == nil && p.FullName == nil &&
		p.IsActive == nil && p.IsSuperuser == nil
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, error)
	Create(ctx context.Context, params CreateUserParams) (*domain.User, error)
	Update(ctx context.Context, user *domain.User, params UpdateUserParams) (*domain.User, error)
	Delete(ctx context.Context, id int64) (*domain.User, error)
}

// LoginThrottle counts failed login attempts per key within a rolling window.
type LoginThrottle interface {
	// Hit records an attempt and returns the number of attempts seen in the
	// current window, including this one.
	Hit(ctx context.Context, key string) (int, error)
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, key string) error
}
