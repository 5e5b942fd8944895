package auth_test

import (
	"context"

	"github.com/userbase/backend/domain"
	"github.com/userbase/backend/repository"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	updates []repository.UpdateUserParams
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{byEmail: make(map[string]*domain.User)}
	for _, u := range users {
		repo.byEmail[u.Email] = u
	}
	return repo
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) List(context.Context, int, int) ([]domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Create(context.Context, repository.CreateUserParams) (*domain.User, error) {
	return nil, domain.ErrInvalidPayload
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User, params repository.UpdateUserParams) (*domain.User, error) {
	f.updates = append(f.updates, params)
	updated := *user
	if params.HashedPassword != nil {
		updated.HashedPassword = *params.HashedPassword
	}
	f.byEmail[updated.Email] = &updated
	return &updated, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

type fakeThrottle struct {
	counts map[string]int
	resets []string
	err    error
}

func newFakeThrottle() *fakeThrottle {
	return &fakeThrottle{counts: make(map[string]int)}
}

func (f *fakeThrottle) Hit(_ context.Context, key string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeThrottle) Reset(_ context.Context, key string) error {
	f.resets = append(f.resets, key)
	delete(f.counts, key)
	return nil
}
