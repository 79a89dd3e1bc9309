package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestManager_IssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	id := uuid.New()

	raw, err := m.Issue(id, "worker@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, raw)

	claims, err := m.Verify(raw)
	assert.NoError(t, err)
	assert.Equal(t, id, claims.EmployeeID)
	assert.Equal(t, "worker@example.com", claims.Email)
}

func TestManager_Verify_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)
	raw, err := m.Issue(uuid.New(), "worker@example.com")
	assert.NoError(t, err)

	_, err = m.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	raw, err := issuer.Issue(uuid.New(), "worker@example.com")
	assert.NoError(t, err)

	_, err = verifier.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestManager_Verify_Garbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestManager_Fingerprint(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	a := m.Fingerprint("token-a")
	b := m.Fingerprint("token-b")

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, m.Fingerprint("token-a"))
}
