package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("test-secret-123", time.Hour, "lab-reservation")

	token, expiresAt, err := svc.GenerateToken(42, "profesor")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "profesor", claims.Role)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, _, err := New("secret-a", time.Hour, "lab-reservation").GenerateToken(1, "admin")
	require.NoError(t, err)

	_, err = New("secret-b", time.Hour, "lab-reservation").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Expired(t *testing.T) {
	svc := New("secret", time.Minute, "lab-reservation")
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.GenerateToken(1, "admin")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := New("secret", time.Hour, "lab-reservation").ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
