package auth_test

import (
	"testing"
	"time"

	"github.com/prepdeck/prepdeck/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	tokens := auth.New("test-secret", time.Hour)

	signed, err := tokens.Sign(42)
	require.NoError(t, err)

	userID, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, err := auth.New("secret-a", time.Hour).Sign(42)
	require.NoError(t, err)

	_, err = auth.New("secret-b", time.Hour).Verify(signed)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	tokens := auth.New("test-secret", -time.Minute)

	signed, err := tokens.Sign(42)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := auth.New("test-secret", time.Hour).Verify("not-a-token")
	assert.Error(t, err)
}
