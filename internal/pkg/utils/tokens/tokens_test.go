package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionSecret(t *testing.T) {
	a, err := NewSessionSecret()
	require.NoError(t, err)
	b, err := NewSessionSecret()
	require.NoError(t, err)

	assert.Len(t, a, 48)
	assert.NotEqual(t, a, b)
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		prefix         string
		expectedSecret string
		expectedOK     bool
	}{
		{
			name:           "valid token",
			raw:            "ark_session_deadbeef",
			prefix:         "ark_session_",
			expectedSecret: "deadbeef",
			expectedOK:     true,
		},
		{
			name:       "missing prefix",
			raw:        "deadbeef",
			prefix:     "ark_session_",
			expectedOK: false,
		},
		{
			name:       "empty raw",
			raw:        "",
			prefix:     "ark_session_",
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret, ok := ParseToken(tt.raw, tt.prefix)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedSecret, secret)
		})
	}
}

func TestHMAC256Hex(t *testing.T) {
	d1 := HMAC256Hex("pepper", "secret")
	d2 := HMAC256Hex("pepper", "secret")
	d3 := HMAC256Hex("other", "secret")

	assert.Len(t, d1, 64)
	assert.Equal(t, d1, d2)
	assert.NotEqual(t, d1, d3)
}
