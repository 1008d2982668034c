package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAPIKey(t *testing.T) {
	plain := "messi10"

	hash, err := HashAPIKey(plain)
	require.NoError(t, err)

	require.True(t, CompareAPIKey(hash, plain))
	require.True(t, CompareAPIKey(hash, " messi10 "))
	require.False(t, CompareAPIKey(hash, "ronaldo7"))
	require.False(t, CompareAPIKey("not-a-hash", plain))
}

func TestHashAPIKeyRejectsBadInput(t *testing.T) {
	_, err := HashAPIKey("   ")
	require.Error(t, err)

	_, err = HashAPIKey(strings.Repeat("k", MAX_API_KEY_LENGTH+1))
	require.Error(t, err)
}

func TestKeyFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bare key", header: "secret", want: "secret"},
		{name: "bearer", header: "Bearer secret", want: "secret"},
		{name: "lower case bearer", header: "bearer  secret ", want: "secret"},
		{name: "empty", header: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, KeyFromHeader(tt.header))
		})
	}
}
