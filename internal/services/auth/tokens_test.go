package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	svc, err := NewService(Config{Secret: "test-secret", Issuer: "podsite", DefaultTTL: time.Hour})
	require.NoError(t, err)
	return svc
}

func TestNewService_RequiresSecret(t *testing.T) {
	_, err := NewService(Config{})
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestIssueAndValidate(t *testing.T) {
	svc := newTestService(t)

	token, issued, err := svc.IssueToken(" Host@Example.com ", 0)
	require.NoError(t, err)
	assert.Equal(t, "host@example.com", issued.Email)
	assert.NotEmpty(t, issued.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt.Time, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "host@example.com", claims.Email)
	assert.True(t, claims.IsAdmin())
	assert.Equal(t, "podsite", claims.Issuer)
}

func TestValidateToken_Failures(t *testing.T) {
	svc := newTestService(t)

	other, err := NewService(Config{Secret: "other-secret", Issuer: "podsite"})
	require.NoError(t, err)
	foreign, _, err := other.IssueToken("host@example.com", time.Hour)
	require.NoError(t, err)

	wrongIssuer, err := NewService(Config{Secret: "test-secret", Issuer: "someone-else"})
	require.NoError(t, err)
	misissued, _, err := wrongIssuer.IssueToken("host@example.com", time.Hour)
	require.NoError(t, err)

	viewer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email: "viewer@example.com",
		Role:  "viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "podsite",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"garbage", "not-a-token", ErrInvalidToken},
		{"wrong secret", foreign, ErrInvalidToken},
		{"wrong issuer", misissued, ErrInvalidToken},
		{"non-admin role", viewer, ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(t)
	past := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return past }

	token, _, err := svc.IssueToken("host@example.com", time.Hour)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestIssueToken_AdminEmails(t *testing.T) {
	svc, err := NewService(Config{Secret: "s", AdminEmails: []string{"Host@Example.com"}})
	require.NoError(t, err)

	_, _, err = svc.IssueToken("host@example.com", time.Minute)
	assert.NoError(t, err)

	_, _, err = svc.IssueToken("intruder@example.com", time.Minute)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.IssueToken("  ", time.Minute)
	assert.Error(t, err)
}

func TestValidateToken_AdminEmails(t *testing.T) {
	issuer, err := NewService(Config{Secret: "s", AdminEmails: []string{"host@example.com", "cohost@example.com"}})
	require.NoError(t, err)
	token, _, err := issuer.IssueToken("cohost@example.com", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		emails  []string
		wantErr error
	}{
		{name: "still listed", emails: []string{"Cohost@Example.com"}},
		{name: "removed from list", emails: []string{"host@example.com"}, wantErr: ErrUnauthorized},
		{name: "no list configured", emails: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewService(Config{Secret: "s", AdminEmails: tt.emails})
			require.NoError(t, err)

			claims, err := svc.ValidateToken(token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "cohost@example.com", claims.Email)
		})
	}
}

func TestDevAuth(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateToken("dev-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	svc.SetDevAuth(true, "dev-token")
	claims, err := svc.ValidateToken("dev-token")
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())

	_, err = svc.ValidateToken("dev-tokenX")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
