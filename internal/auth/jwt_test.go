package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orion/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager(testSecret, "orion", time.Hour)
	u := &model.User{ID: 42, Username: "alice", Email: "alice@example.com"}

	signed, issued, err := m.Issue(u)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestTokenManager_UniqueTokenIDs(t *testing.T) {
	m := NewTokenManager(testSecret, "orion", time.Hour)
	u := &model.User{ID: 1}

	_, a, err := m.Issue(u)
	require.NoError(t, err)
	_, b, err := m.Issue(u)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestTokenManager_Parse_Rejects(t *testing.T) {
	u := &model.User{ID: 1, Username: "alice"}
	m := NewTokenManager(testSecret, "orion", time.Hour)

	t.Run("expired", func(t *testing.T) {
		past := NewTokenManager(testSecret, "orion", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		signed, _, err := past.Issue(u)
		require.NoError(t, err)

		_, err = m.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("ffffffffffffffffffffffffffffffff", "orion", time.Hour)
		signed, _, err := other.Issue(u)
		require.NoError(t, err)

		_, err = m.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewTokenManager(testSecret, "someone-else", time.Hour)
		signed, _, err := other.Issue(u)
		require.NoError(t, err)

		_, err = m.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "orion",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
