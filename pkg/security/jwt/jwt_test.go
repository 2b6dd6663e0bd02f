package jwt

import (
	"context"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unipath/backend/pkg/auth"
)

func parseClaims(t *testing.T, token, secret string) *Claims {
	t.Helper()
	parsed, err := jwtlib.ParseWithClaims(token, &Claims{}, func(*jwtlib.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*Claims)
	require.True(t, ok)
	return claims
}

func TestGenerator(t *testing.T) {
	gen := NewGenerator("secret", "unipath-api", time.Hour)
	user := auth.User{ID: uuid.New(), Email: "a@b.c", IsAdmin: true}

	token, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)

	claims := parseClaims(t, token, "secret")
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "unipath-api", claims.Issuer)
	assert.True(t, claims.IsAdmin)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestGenerator_NonAdmin(t *testing.T) {
	gen := NewGenerator("secret", "unipath-api", time.Hour)
	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)
	assert.False(t, parseClaims(t, token, "secret").IsAdmin)
}

func TestGenerator_WrongSecretFailsValidation(t *testing.T) {
	gen := NewGenerator("secret", "unipath-api", time.Hour)
	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = jwtlib.ParseWithClaims(token, &Claims{}, func(*jwtlib.Token) (any, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
