package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
)

// MinSecretLen is the shortest HS256 signing secret accepted.
const MinSecretLen = 32

// refreshTokenBytes gives 256 bits of entropy per refresh token.
const refreshTokenBytes = 32

var (
	ErrSecretTooShort = errors.New("jwt signing secret must be at least 32 bytes")
	ErrInvalidToken   = errors.New("invalid token")
)

// Claims is the access-token payload.
type Claims struct {
	Name  string `json:"unique_name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a user ID.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim: %w", err)
	}
	return uint(id), nil
}

// TokenManager issues and validates access tokens and mints opaque
// refresh tokens. Access tokens are stateless: validation checks only
// signature, issuer, audience and expiry.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenManager builds a TokenManager. The secret must be at least
// MinSecretLen bytes.
func NewTokenManager(secret, issuer, audience string, ttl time.Duration) (*TokenManager, error) {
	if len(secret) < MinSecretLen {
		return nil, ErrSecretTooShort
	}
	return &TokenManager{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}, nil
}

// TTL returns the access-token lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// GenerateToken signs a fresh HS256 access token for the user.
func (m *TokenManager) GenerateToken(userID uint, name, email string, role models.RoleName) (string, error) {
	now := time.Now()

	claims := &Claims{
		Name:  name,
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken validates an access token and returns its claims.
// Malformed or forged input returns ErrInvalidToken, never panics.
func (m *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateRefreshToken mints an opaque, unguessable refresh token. It
// carries no claims and is unrelated to any access token.
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateVerificationToken mints an opaque token for email
// verification and password reset links.
func GenerateVerificationToken() string {
	return uuid.NewString() + uuid.New().String()[:8]
}
