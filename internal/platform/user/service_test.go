package user_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunargrid/lunargrid/internal/platform/user"
	"github.com/lunargrid/lunargrid/pkg/logger"
)

type fakeRepo struct {
	byEmail   map[string]*user.User
	updateErr error
	updates   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]*user.User)}
}

func (r *fakeRepo) Create(_ context.Context, u *user.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return user.ErrUserAlreadyExists
	}
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeRepo) Update(_ context.Context, u *user.User) error {
	r.updates++
	return r.updateErr
}

func newService(repo *fakeRepo) *user.Service {
	return user.NewService(repo, logger.New("test", io.Discard))
}

func TestService_Register(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	registered, err := svc.Register(context.Background(), "alice@example.com", "Alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Alice", registered.DisplayName)
	assert.NotEmpty(t, registered.PasswordHash)
	assert.NotEqual(t, "password123", registered.PasswordHash)
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	_, err := svc.Register(context.Background(), "alice@example.com", "", "password123")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice@example.com", "", "password123")
	assert.ErrorIs(t, err, user.ErrUserAlreadyExists)
}

func TestService_RegisterShortPassword(t *testing.T) {
	svc := newService(newFakeRepo())

	_, err := svc.Register(context.Background(), "alice@example.com", "", "short")
	assert.ErrorIs(t, err, user.ErrPasswordTooShort)
}

func TestService_Login(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	_, err := svc.Register(context.Background(), "alice@example.com", "", "password123")
	require.NoError(t, err)

	logged, err := svc.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotNil(t, logged.LastLoginAt)
	assert.Equal(t, 1, repo.updates)
}

func TestService_LoginWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	_, err := svc.Register(context.Background(), "alice@example.com", "", "password123")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, user.ErrInvalidPassword)
}

func TestService_LoginUnknownEmailHidesExistence(t *testing.T) {
	svc := newService(newFakeRepo())

	_, err := svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, user.ErrInvalidPassword)
}

func TestService_LoginSurvivesLastLoginUpdateFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.updateErr = errors.New("connection reset")
	svc := newService(repo)

	_, err := svc.Register(context.Background(), "alice@example.com", "", "password123")
	require.NoError(t, err)

	logged, err := svc.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotNil(t, logged)
}
