package handler_test

import (
	"context"
	"sort"
	"time"

	"github.com/userbase/backend/domain"
	"github.com/userbase/backend/repository"
)

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context, offset, limit int) ([]domain.User, error) {
	ids := make([]int64, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]domain.User, 0, limit)
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, *f.users[ids[i]])
	}
	return out, nil
}

func (f *fakeUserRepo) Create(_ context.Context, params repository.CreateUserParams) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == params.Email {
			return nil, domain.ErrEmailTaken
		}
	}

	now := time.Now()
	user := &domain.User{
		ID:             f.nextID,
		Email:          params.Email,
		HashedPassword: params.HashedPassword,
		FullName:       params.FullName,
		IsActive:       params.IsActive,
		IsSuperuser:    params.IsSuperuser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.nextID++
	f.users[user.ID] = user
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User, params repository.UpdateUserParams) (*domain.User, error) {
	stored, ok := f.users[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	if params.Email != nil {
		stored.Email = *params.Email
	}
	if params.HashedPassword != nil {
		stored.HashedPassword = *params.HashedPassword
	}
	if params.FullName != nil {
		stored.FullName = *params.FullName
	}
	if params.IsActive != nil {
		stored.IsActive = *params.IsActive
	}
	if params.IsSuperuser != nil {
		stored.IsSuperuser = *params.IsSuperuser
	}
	stored.UpdatedAt = time.Now()

	copied := *stored
	return &copied, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) (*domain.User, error) {
	stored, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(f.users, id)
	return stored, nil
}
