package chattoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIssuer_RequiresCredentials(t *testing.T) {
	_, err := NewIssuer("", "secret")
	require.Error(t, err)
	_, err = NewIssuer("key", "")
	require.Error(t, err)
}

func TestIssueAndVerifyToken(t *testing.T) {
	issuer, err := NewIssuer("api-key", "api-secret")
	require.NoError(t, err)
	assert.Equal(t, "api-key", issuer.APIKey())

	token, err := issuer.IssueToken("user-1")
	require.NoError(t, err)

	userID, err := issuer.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestIssueToken_RequiresUserID(t *testing.T) {
	issuer, err := NewIssuer("api-key", "api-secret")
	require.NoError(t, err)

	_, err = issuer.IssueToken("")
	require.Error(t, err)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer, _ := NewIssuer("api-key", "api-secret")
	other, _ := NewIssuer("api-key", "different-secret")

	token, err := issuer.IssueToken("user-1")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	require.Error(t, err)
}
