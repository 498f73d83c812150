package auth

import (
	"testing"
	"time"

	"solesnaps-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_AccessTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	token, err := issuer.GenerateAccessToken(userID, model.RoleAdmin)
	require.NoError(t, err)

	claims, err := issuer.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestTokenIssuer_RefreshTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	token, err := issuer.GenerateRefreshToken(userID)
	require.NoError(t, err)

	got, err := issuer.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret", 15*time.Minute, 24*time.Hour)
	other := NewTokenIssuer("different", 15*time.Minute, 24*time.Hour)

	token, err := issuer.GenerateAccessToken(uuid.New(), model.RoleCustomer)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute, 24*time.Hour)

	token, err := issuer.GenerateAccessToken(uuid.New(), model.RoleCustomer)
	require.NoError(t, err)

	_, err = issuer.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsAccessTokenAsRefresh(t *testing.T) {
	issuer := NewTokenIssuer("secret", 15*time.Minute, 24*time.Hour)

	access, err := issuer.GenerateAccessToken(uuid.New(), model.RoleCustomer)
	require.NoError(t, err)

	// Access tokens carry no subject, so parsing the subject as a user ID fails.
	_, err = issuer.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("secret", 15*time.Minute, 24*time.Hour)

	_, err := issuer.ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}
