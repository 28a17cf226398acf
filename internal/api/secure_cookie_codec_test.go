package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func flipMiddleChar(value string) string {
	middle := len(value) / 2
	replacement := byte('A')
	if value[middle] == 'A' {
		replacement = 'B'
	}
	return value[:middle] + string(replacement) + value[middle+1:]
}

func TestCookieSealerRoundTrip(t *testing.T) {
	t.Parallel()

	sealer, err := newCookieSealer([]byte(testSecretKey))
	require.NoError(t, err)

	sealed, err := sealer.seal(authCookiePurpose, []byte("header.payload.signature"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(sealed, sealedCookieVersion+"."))
	require.NotContains(t, sealed, "payload")

	opened, err := sealer.open(authCookiePurpose, sealed)
	require.NoError(t, err)
	require.Equal(t, "header.payload.signature", string(opened))
}

func TestCookieSealerRejectsTamperedValues(t *testing.T) {
	t.Parallel()

	sealer, err := newCookieSealer([]byte(testSecretKey))
	require.NoError(t, err)
	sealed, err := sealer.seal(authCookiePurpose, []byte("token"))
	require.NoError(t, err)

	other, err := newCookieSealer([]byte("another-secret-another-secret-00"))
	require.NoError(t, err)

	for name, value := range map[string]string{
		"flipped byte":     flipMiddleChar(sealed),
		"wrong version":    "v2" + strings.TrimPrefix(sealed, sealedCookieVersion),
		"not sealed":       "eyJhbGciOiJIUzI1NiJ9.e30.sig",
		"truncated":        sealed[:len(sealedCookieVersion)+4],
		"empty":            "",
		"bad base64 chars": sealedCookieVersion + ".!!!",
	} {
		_, err := sealer.open(authCookiePurpose, value)
		require.ErrorIs(t, err, errInvalidSealedCookie, name)
	}

	_, err = sealer.open("csrf", sealed)
	require.ErrorIs(t, err, errInvalidSealedCookie)
	_, err = other.open(authCookiePurpose, sealed)
	require.ErrorIs(t, err, errInvalidSealedCookie)
}

func TestTamperedAuthCookieIsUnauthorized(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "teacher@example.com")

	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/auth/me", nil, cookie).status)

	tampered := doJSON(t, app, http.MethodGet, "/api/auth/me", nil, flipMiddleChar(cookie))
	require.Equal(t, http.StatusUnauthorized, tampered.status)
	require.Equal(t, "unauthorized", tampered.body["error"])
}
