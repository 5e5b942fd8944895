package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/userbase/backend/domain"
	"github.com/userbase/backend/repository"
)

const uniqueViolation = "23505"

var userColumns = []string{
	"id", "email", "hashed_password", "full_name",
	"is_active", "is_superuser", "created_at", "updated_at",
}

type userRepository struct {
	users table[domain.User]
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{
		users: table[domain.User]{
			pool:     pool,
			name:     "users",
			columns:  userColumns,
			notFound: domain.ErrUserNotFound,
			scan:     scanUser,
		},
	}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.users.getBy(ctx, "id", id)
}

// GetByEmail is an exact-match lookup; emails are stored as submitted and
// compared case-sensitively.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.users.getBy(ctx, "email", email)
}

func (r *userRepository) List(ctx context.Context, offset, limit int) ([]domain.User, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	return r.users.list(ctx, offset, limit)
}

func (r *userRepository) Create(ctx context.Context, params repository.CreateUserParams) (*domain.User, error) {
	user, err := r.users.insert(ctx, []Field{
		{Column: "email", Value: params.Email},
		{Column: "hashed_password", Value: params.HashedPassword},
		{Column: "full_name", Value: nullString(params.FullName)},
		{Column: "is_active", Value: params.IsActive},
		{Column: "is_superuser", Value: params.IsSuperuser},
	})
	if err != nil {
		return nil, mapConstraint(err)
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User, params repository.UpdateUserParams) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}

	var fields []Field
	if params.Email != nil {
		fields = append(fields, Field{Column: "email", Value: *params.Email})
	}
	if params.HashedPassword != nil {
		fields = append(fields, Field{Column: "hashed_password", Value: *params.HashedPassword})
	}
	if params.FullName != nil {
		fields = append(fields, Field{Column: "full_name", Value: nullString(*params.FullName)})
	}
	if params.IsActive != nil {
		fields = append(fields, Field{Column: "is_active", Value: *params.IsActive})
	}
	if params.IsSuperuser != nil {
		fields = append(fields, Field{Column: "is_superuser", Value: *params.IsSuperuser})
	}

	updated, err := r.users.update(ctx, user.ID, fields)
	if err != nil {
		return nil, mapConstraint(err)
	}
	return updated, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) (*domain.User, error) {
	return r.users.delete(ctx, id)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var fullName *string

	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&fullName,
		&user.IsActive,
		&user.IsSuperuser,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if fullName != nil {
		user.FullName = *fullName
	}
	return &user, nil
}

func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrEmailTaken
	}
	return err
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
