package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	userID := uuid.New().String()

	signed, err := issuer.Issue(userID, "ADMIN")
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)

	claims, err := issuer.Verify(signed)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestIssuer_Verify_Tampered(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	signed, err := issuer.Issue(uuid.New().String(), "USER")
	assert.NoError(t, err)

	tampered := signed[:len(signed)-3] + "abc"
	_, err = issuer.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_Verify_WrongSecret(t *testing.T) {
	issuer := NewIssuer("secret-a", time.Hour)
	other := NewIssuer("secret-b", time.Hour)

	signed, err := issuer.Issue(uuid.New().String(), "USER")
	assert.NoError(t, err)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_Verify_Expired(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)

	signed, err := issuer.Issue(uuid.New().String(), "USER")
	assert.NoError(t, err)

	_, err = issuer.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_Verify_Garbage(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	for _, v := range []string{"", "not-a-token", "a.b.c"} {
		_, err := issuer.Verify(v)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestNewIssuer_DefaultTTL(t *testing.T) {
	issuer := NewIssuer("test-secret", 0)
	assert.Equal(t, DefaultTTL, issuer.TTL())
}
