package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	signed, err := svc.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	subject, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestVerify_Expired(t *testing.T) {
	svc := NewService([]byte("test-secret"), -time.Minute)

	signed, err := svc.Issue("alice")
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewService([]byte("secret-a"), time.Hour)
	verifier := NewService([]byte("secret-b"), time.Hour)

	signed, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// Malformed, tampered and expired tokens must all surface the same error.
func TestVerify_UniformFailure(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	for _, tokenString := range []string{
		"",
		"not-a-jwt",
		"aaaa.bbbb.cccc",
	} {
		_, err := svc.Verify(tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tokenString)
	}
}

func TestVerify_EmptySubject(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	signed, err := svc.Issue("")
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
