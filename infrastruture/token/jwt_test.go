package token

import (
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-pathviz/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func secret(t *testing.T) string {
	t.Helper()
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	require.NoError(t, err)
	return base64.URLEncoding.EncodeToString(bytes)
}

func TestJwtService(t *testing.T) {
	key := secret(t)
	svc := NewJwtService(key, "vinom-pathviz")
	sessionID := uuid.New()

	t.Run("session claim survives a round trip", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{i.ClaimSessionID: sessionID.String()}, 5*time.Minute)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, sessionID.String(), claims[i.ClaimSessionID])
		assert.Equal(t, "vinom-pathviz", claims["iss"])
	})

	t.Run("caller cannot override the issuer", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{"iss": "someone-else"}, time.Minute)
		require.NoError(t, err)

		claims, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "vinom-pathviz", claims["iss"])
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.Decode("invalidTokenString")
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{i.ClaimSessionID: sessionID.String()}, -time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewJwtService(secret(t), "vinom-pathviz")
		token, err := other.Generate(map[string]interface{}{}, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})

	t.Run("token from another issuer", func(t *testing.T) {
		other := NewJwtService(key, "vinom-api")
		token, err := other.Generate(map[string]interface{}{}, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrWrongIssuer)
	})
}
