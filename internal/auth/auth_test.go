package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, c jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, c).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims(sub string) claims {
	return claims{
		Email: sub + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    "matlog-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestHMACVerifier_Valid(t *testing.T) {
	v, err := NewHMACVerifier(testSecret, "matlog-test")
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("user-1")))
	require.NoError(t, err)
	assert.Equal(t, Identity{Subject: "user-1", Email: "user-1@example.com"}, id)
}

func TestHMACVerifier_Rejects(t *testing.T) {
	v, err := NewHMACVerifier(testSecret, "matlog-test")
	require.NoError(t, err)

	expired := validClaims("user-1")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongIssuer := validClaims("user-1")
	wrongIssuer.Issuer = "someone-else"

	noSubject := validClaims("")

	tests := map[string]string{
		"wrong secret": sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims("user-1")),
		"expired":      sign(t, jwt.SigningMethodHS256, []byte(testSecret), expired),
		"wrong issuer": sign(t, jwt.SigningMethodHS256, []byte(testSecret), wrongIssuer),
		"no subject":   sign(t, jwt.SigningMethodHS256, []byte(testSecret), noSubject),
		"unsigned":     sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims("user-1")),
		"garbage":      "not.a.token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}

func TestHMACVerifier_IssuerOptional(t *testing.T) {
	v, err := NewHMACVerifier(testSecret, "")
	require.NoError(t, err)

	c := validClaims("user-2")
	c.Issuer = ""
	id, err := v.Verify(context.Background(), sign(t, jwt.SigningMethodHS512, []byte(testSecret), c))
	require.NoError(t, err)
	assert.Equal(t, "user-2", id.Subject)
}

func TestNewHMACVerifier_RequiresSecret(t *testing.T) {
	_, err := NewHMACVerifier("", "")
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	tok, err := BearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = BearerToken("bearer   xyz ")
	require.NoError(t, err)
	assert.Equal(t, "xyz", tok)

	for _, h := range []string{"", "Basic abc", "Bearer", "Bearer   "} {
		_, err := BearerToken(h)
		assert.ErrorIs(t, err, ErrUnauthenticated, "header %q", h)
	}
}

func TestIdentityContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{Subject: "s"})
	id, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "s", id.Subject)
}
