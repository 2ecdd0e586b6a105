package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault/internal/model"
)

var jane = model.User{ID: "u-1", Name: "Jane", Email: "jane@x.com", Role: model.RoleUser}

func TestIssuer_RoundTrip(t *testing.T) {
	iss, err := NewIssuer("secret", time.Hour)
	require.NoError(t, err)

	tok, err := iss.Issue(jane)
	require.NoError(t, err)

	claims, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, jane, claims.User())
	assert.Equal(t, "u-1", claims.Subject)
}

func TestIssuer_Rejects(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)
	other, _ := NewIssuer("other", time.Hour)
	tok, _ := other.Issue(jane)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := iss.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := iss.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past, _ := NewIssuer("secret", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		old, err := past.Issue(jane)
		require.NoError(t, err)

		_, err = iss.Parse(old)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "x"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = iss.Parse(none)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewIssuer_EmptySecret(t *testing.T) {
	_, err := NewIssuer("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
