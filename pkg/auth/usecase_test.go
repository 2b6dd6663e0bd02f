package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user User) error {
	if _, ok := r.users[user.Email]; ok {
		return ErrUserAlreadyExists
	}
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (User, error) {
	u, ok := r.users[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

type staticTokens struct{}

func (staticTokens) Generate(_ context.Context, user User) (string, error) {
	return "token-for-" + user.Email, nil
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, staticTokens{})
	ctx := context.Background()

	res, err := svc.Register(ctx, " alice@example.com ", "s3cret", " Alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", res.User.Email)
	assert.Equal(t, "Alice", res.User.Name)
	assert.Equal(t, "token-for-alice@example.com", res.Token)
	assert.NotEqual(t, "s3cret", res.User.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("s3cret")))

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice@example.com", "other", "Alice")
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, err := svc.Register(ctx, "", "pass", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = svc.Register(ctx, "bob@example.com", "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, staticTokens{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "carol@example.com", "correct-horse", "Carol")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		res, err := svc.Login(ctx, "carol@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "carol@example.com", res.User.Email)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "carol@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "x")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
