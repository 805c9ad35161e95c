package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "regnet/pkg/domain-errors"
)

func newService() *JWTService {
	return NewJWTService("test-signing-key", "test-issuer")
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService()
	token, err := svc.GenerateToken("registrar-1", "registrarMSP", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "registrar-1", claims.Subject)
	assert.Equal(t, "registrarMSP", claims.MSPID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)

	inv := claims.Invoker()
	assert.Equal(t, "registrarMSP", inv.MSPID)
}

func TestValidateToken(t *testing.T) {
	t.Run("garbage", func(t *testing.T) {
		_, err := newService().ValidateToken("invalid-token-string")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("expired", func(t *testing.T) {
		svc := newService()
		token, err := svc.GenerateToken("u", "usersMSP", -time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.Equal(t, "token has expired", dErrors.MessageOf(err))
	})

	t.Run("wrong key", func(t *testing.T) {
		token, err := NewJWTService("other-key", "test-issuer").GenerateToken("u", "usersMSP", time.Hour)
		require.NoError(t, err)

		_, err = newService().ValidateToken(token)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := NewJWTService("test-signing-key", "elsewhere").GenerateToken("u", "usersMSP", time.Hour)
		require.NoError(t, err)

		_, err = newService().ValidateToken(token)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func TestGenerateTokenRequiresMSP(t *testing.T) {
	_, err := newService().GenerateToken("u", " ", time.Hour)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
