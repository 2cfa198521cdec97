package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
)

const testSecret = "test-secret-that-is-32-bytes-long!!"

func newTestManager(t *testing.T, ttl time.Duration) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(testSecret, "snapdi-api", "snapdi-clients", ttl)
	require.NoError(t, err)
	return m
}

func TestNewTokenManager_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenManager("short", "iss", "aud", time.Hour)
	assert.ErrorIs(t, err, ErrSecretTooShort)
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	m := newTestManager(t, time.Hour)

	token, err := m.GenerateToken(42, "Linh Tran", "linh@snapdi.vn", models.RolePhotographer)
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, "Linh Tran", claims.Name)
	assert.Equal(t, "linh@snapdi.vn", claims.Email)
	assert.Equal(t, string(models.RolePhotographer), claims.Role)
	assert.Equal(t, "snapdi-api", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateToken_UniqueJTI(t *testing.T) {
	m := newTestManager(t, time.Hour)

	t1, err := m.GenerateToken(1, "A", "a@b.com", models.RoleCustomer)
	require.NoError(t, err)
	t2, err := m.GenerateToken(1, "A", "a@b.com", models.RoleCustomer)
	require.NoError(t, err)

	c1, err := m.ParseToken(t1)
	require.NoError(t, err)
	c2, err := m.ParseToken(t2)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	m := newTestManager(t, time.Hour)

	for _, input := range []string{
		"",
		"not-a-token",
		"a.b.c",
		strings.Repeat("x", 500),
	} {
		_, err := m.ParseToken(input)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", input)
	}
}

func TestParseToken_RejectsWrongSecret(t *testing.T) {
	m := newTestManager(t, time.Hour)
	other, err := NewTokenManager("another-secret-that-is-32-bytes!!!!", "snapdi-api", "snapdi-clients", time.Hour)
	require.NoError(t, err)

	token, err := m.GenerateToken(1, "A", "a@b.com", models.RoleCustomer)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_RejectsExpired(t *testing.T) {
	m := newTestManager(t, -time.Minute)

	token, err := m.GenerateToken(1, "A", "a@b.com", models.RoleCustomer)
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_RejectsWrongIssuerOrAudience(t *testing.T) {
	issuer, err := NewTokenManager(testSecret, "other-issuer", "snapdi-clients", time.Hour)
	require.NoError(t, err)
	audience, err := NewTokenManager(testSecret, "snapdi-api", "other-audience", time.Hour)
	require.NoError(t, err)
	m := newTestManager(t, time.Hour)

	fromWrongIssuer, err := issuer.GenerateToken(1, "A", "a@b.com", models.RoleCustomer)
	require.NoError(t, err)
	fromWrongAudience, err := audience.GenerateToken(1, "A", "a@b.com", models.RoleCustomer)
	require.NoError(t, err)

	_, err = m.ParseToken(fromWrongIssuer)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ParseToken(fromWrongAudience)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateRefreshToken(t *testing.T) {
	t1, err := GenerateRefreshToken()
	require.NoError(t, err)
	t2, err := GenerateRefreshToken()
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
	// 32 random bytes in unpadded base64url
	assert.Len(t, t1, 43)
	assert.NotContains(t, t1, "=")
	assert.NotContains(t, t1, "+")
	assert.NotContains(t, t1, "/")
}

func TestGenerateVerificationToken(t *testing.T) {
	t1 := GenerateVerificationToken()
	t2 := GenerateVerificationToken()

	assert.NotEqual(t, t1, t2)
	assert.NotEmpty(t, t1)
}
