package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-testing"

func TestGenerateTokenPair(t *testing.T) {
	tests := []struct {
		name    string
		subject TokenSubject
		secret  string
		wantErr bool
	}{
		{
			name:    "Operator token",
			subject: TokenSubject{UserID: "u-1", Email: "ops@example.com", Role: "operator"},
			secret:  testSecret,
		},
		{
			name:    "Business token carries venue",
			subject: TokenSubject{UserID: "u-2", Email: "owner@example.com", Role: "business", VenueID: "v-9"},
			secret:  testSecret,
		},
		{
			name:    "Empty secret",
			subject: TokenSubject{UserID: "u-3", Role: "operator"},
			secret:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := GenerateTokenPair(tt.subject, tt.secret, 15*time.Minute, 7*24*time.Hour)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, tokens)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)
			assert.Equal(t, int64(900), tokens.ExpiresIn)

			claims, err := ValidateToken(tokens.AccessToken, tt.secret)
			require.NoError(t, err)
			assert.Equal(t, tt.subject.UserID, claims.UserID)
			assert.Equal(t, tt.subject.Role, claims.Role)
			assert.Equal(t, tt.subject.VenueID, claims.VenueID)
		})
	}
}

func TestValidateToken_Expired(t *testing.T) {
	tokens, err := GenerateTokenPair(TokenSubject{UserID: "u-1", Role: "operator"}, testSecret, -time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(tokens.AccessToken, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tokens, err := GenerateTokenPair(TokenSubject{UserID: "u-1", Role: "operator"}, testSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(tokens.AccessToken, "another-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsRefreshToken(t *testing.T) {
	tokens, err := GenerateTokenPair(TokenSubject{UserID: "u-1", Role: "operator"}, testSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(tokens.RefreshToken, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := ValidateRefreshToken(tokens.RefreshToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
}

func TestValidateToken_Malformed(t *testing.T) {
	_, err := ValidateToken("invalid.jwt.token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
