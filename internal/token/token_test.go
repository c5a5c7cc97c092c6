package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue(secret, "franta", time.Minute)
	require.NoError(t, err)

	login, err := ParseCookie(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "franta", login)
}

func TestParseCookieStripsBearerPrefix(t *testing.T) {
	tok, err := Issue(secret, "franta", time.Minute)
	require.NoError(t, err)

	login, err := ParseCookie(secret, CookieValue(tok))
	require.NoError(t, err)
	assert.Equal(t, "franta", login)

	// Case-insensitive scheme, as browsers may store it either way.
	login, err = ParseCookie(secret, "bearer "+tok)
	require.NoError(t, err)
	assert.Equal(t, "franta", login)
}

func TestParseCookieRejectsExpired(t *testing.T) {
	tok, err := Issue(secret, "franta", -time.Minute)
	require.NoError(t, err)

	_, err = ParseCookie(secret, tok)
	assert.Error(t, err)
}

func TestParseCookieRejectsWrongSecret(t *testing.T) {
	tok, err := Issue(secret, "franta", time.Minute)
	require.NoError(t, err)

	_, err = ParseCookie("jine-tajemstvi", tok)
	assert.Error(t, err)
}

func TestParseCookieRejectsGarbage(t *testing.T) {
	_, err := ParseCookie(secret, "Bearer not.a.token")
	assert.Error(t, err)

	_, err = ParseCookie(secret, "")
	assert.Error(t, err)
}
