package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/userbase/backend/domain"
	"github.com/userbase/backend/pkg/security"
	"github.com/userbase/backend/repository"
)

// CreateInput carries the fields accepted when an administrator creates a
// user. The plaintext password never reaches the repository: it is hashed
// here and dropped.
type CreateInput struct {
	Email       string
	Password    string
	FullName    string
	IsActive    *bool
	IsSuperuser *bool
}

// UpdateInput is the administrative partial update. Nil means "not sent".
type UpdateInput struct {
	Email       *string
	Password    *string
	FullName    *string
	IsActive    *bool
	IsSuperuser *bool
}

// ProfileInput is the self-service partial update. It has no is_active or
// is_superuser fields, so callers cannot elevate themselves by construction.
type ProfileInput struct {
	Email    *string
	Password *string
	FullName *string
}

// UseCase implements profile and administrative operations over users.
type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{users: users, logger: logger}
}

func (uc *UseCase) Get(ctx context.Context, id int64) (*domain.User, error) {
	return uc.users.GetByID(ctx, id)
}

func (uc *UseCase) List(ctx context.Context, offset, limit int) ([]domain.User, error) {
	return uc.users.List(ctx, offset, limit)
}

// Create hashes the incoming password and persists a new user. is_active
// defaults to true and is_superuser to false when not sent.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*domain.User, error) {
	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeValidation, "invalid password", err)
	}

	params := repository.CreateUserParams{
		Email:          in.Email,
		HashedPassword: hash,
		FullName:       in.FullName,
		IsActive:       true,
	}
	if in.IsActive != nil {
		params.IsActive = *in.IsActive
	}
	if in.IsSuperuser != nil {
		params.IsSuperuser = *in.IsSuperuser
	}

	created, err := uc.users.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("user created", zap.Int64("id", created.ID))
	return created, nil
}

// Update applies an administrative partial update. A supplied password is
// re-hashed; fields not sent stay untouched.
func (uc *UseCase) Update(ctx context.Context, target *domain.User, in UpdateInput) (*domain.User, error) {
	params := repository.UpdateUserParams{
		Email:       in.Email,
		FullName:    in.FullName,
		IsActive:    in.IsActive,
		IsSuperuser: in.IsSuperuser,
	}
	if in.Password != nil {
		hash, err := security.HashPassword(*in.Password)
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeValidation, "invalid password", err)
		}
		params.HashedPassword = &hash
	}
	return uc.users.Update(ctx, target, params)
}

// UpdateProfile lets a user edit their own record. The input type excludes
// the privilege flags entirely.
func (uc *UseCase) UpdateProfile(ctx context.Context, self *domain.User, in ProfileInput) (*domain.User, error) {
	return uc.Update(ctx, self, UpdateInput{
		Email:    in.Email,
		Password: in.Password,
		FullName: in.FullName,
	})
}

// Delete hard-deletes a user and returns the removed record. Actors cannot
// delete their own account.
func (uc *UseCase) Delete(ctx context.Context, actor *domain.User, id int64) (*domain.User, error) {
	if actor != nil && actor.ID == id {
		return nil, domain.ErrSelfDelete
	}
	deleted, err := uc.users.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("user deleted", zap.Int64("id", id))
	return deleted, nil
}
