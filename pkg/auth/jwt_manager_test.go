package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	userID := uuid.New()

	token, err := m.Generate(userID, "Alice", "alice@test.local", "female")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@test.local", claims.Email)
	assert.Equal(t, "female", claims.Gender)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	token, err := m.Generate(uuid.New(), "Alice", "alice@test.local", "")
	require.NoError(t, err)

	other := NewJWTManager("another-secret", time.Hour)
	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	token, err := m.Generate(uuid.New(), "Alice", "alice@test.local", "")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestExpiry(t *testing.T) {
	ttl := time.Hour
	m := NewJWTManager("secret", ttl)
	token, err := m.Generate(uuid.New(), "Alice", "alice@test.local", "")
	require.NoError(t, err)

	exp, err := m.Expiry(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(ttl), exp, time.Minute)
}

func TestExtractTokenFromHeader(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc123")

	token, err := ExtractTokenFromHeader(req)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	req.Header.Set("Authorization", "abc123")
	_, err = ExtractTokenFromHeader(req)
	assert.Error(t, err)

	req.Header.Del("Authorization")
	_, err = ExtractTokenFromHeader(req)
	assert.Error(t, err)
}
