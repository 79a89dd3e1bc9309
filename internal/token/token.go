package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"go-timetrack/internal/shared/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token has expired",
		http.StatusUnauthorized,
	)

	ErrTokenMalformed = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid token",
		http.StatusUnauthorized,
	)
)

// Claims is the authenticated subject carried by an access token.
type Claims struct {
	EmployeeID uuid.UUID
	Email      string
}

// Manager issues and verifies signed access tokens. It is constructed once
// at startup and injected; it holds no mutable state.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a time-boxed HS256 token carrying the subject claims. Callers
// are responsible for persisting the fingerprint.
func (m *Manager) Issue(employeeID uuid.UUID, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   employeeID.String(),
		"email": email,
		"exp":   time.Now().Add(m.ttl).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature and expiry and returns the subject claims.
func (m *Manager) Verify(raw string) (Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenMalformed
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenMalformed
	}
	if !parsed.Valid {
		return Claims{}, ErrTokenMalformed
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenMalformed
	}

	sub, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["email"].(string)
	if sub == "" || email == "" {
		return Claims{}, ErrTokenMalformed
	}

	employeeID, err := uuid.Parse(sub)
	if err != nil {
		return Claims{}, ErrTokenMalformed
	}

	return Claims{EmployeeID: employeeID, Email: email}, nil
}

// Fingerprint returns a stable one-way digest of the raw token, stored
// server-side so sessions can be revoked without keeping the token itself.
func (m *Manager) Fingerprint(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
