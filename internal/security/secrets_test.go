package security

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestRandomString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		length   int
		alphabet string
		wantErr  bool
	}{
		{name: "negative length", length: -1, alphabet: "abc", wantErr: true},
		{name: "empty alphabet", length: 1, alphabet: "", wantErr: true},
		{name: "zero length", length: 0, alphabet: "abc"},
		{name: "single symbol", length: 8, alphabet: "X"},
		{name: "multi-byte symbols", length: 16, alphabet: "çãé"},
		{name: "temporary password alphabet", length: 64, alphabet: TemporaryPasswordAlphabet},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := RandomString(test.length, test.alphabet)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.length, utf8.RuneCountInString(got))
			for _, char := range got {
				if !strings.ContainsRune(test.alphabet, char) {
					t.Fatalf("RandomString(%d, %q) produced %q outside alphabet", test.length, test.alphabet, char)
				}
			}
		})
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Secret123")
	require.NoError(t, err)
	require.NotEqual(t, "Secret123", hash)
	require.True(t, PasswordMatches(hash, "Secret123"))
	require.False(t, PasswordMatches(hash, "secret123"))
	require.False(t, PasswordMatches("not-a-hash", "Secret123"))
}
