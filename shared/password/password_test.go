package password_test

import (
	"hotel/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		expectedError error
	}{
		{name: "plain ascii", password: "validPassword123"},
		{name: "symbols", password: "P@ssw0rd!#$%^&*()"},
		{name: "unicode", password: "пароль123"},
		{name: "exactly the limit", password: strings.Repeat("a", password.MaxLength)},
		{name: "empty", password: "", expectedError: password.ErrEmpty},
		{name: "over the limit", password: strings.Repeat("a", password.MaxLength+1), expectedError: password.ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := password.Hash(tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, digest)

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(digest, "$2a$"), "expected bcrypt digest, got %s", digest)
			assert.NotContains(t, digest, tt.password)
			assert.NoError(t, password.Verify(tt.password, digest))
		})
	}
}

func TestVerify(t *testing.T) {
	const plain = "front-desk-42"

	digest, err := password.Hash(plain)
	require.NoError(t, err)

	tests := []struct {
		name          string
		password      string
		digest        string
		expectedError error
	}{
		{name: "match", password: plain, digest: digest},
		{name: "wrong password", password: "front-desk-43", digest: digest, expectedError: password.ErrMismatch},
		{name: "empty password", password: "", digest: digest, expectedError: password.ErrMismatch},
		{name: "empty digest", password: plain, digest: "", expectedError: password.ErrMismatch},
		{name: "malformed digest", password: plain, digest: "not-bcrypt", expectedError: password.ErrVerifying},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.digest)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("samePassword")
	require.NoError(t, err)

	second, err := password.Hash("samePassword")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBurn(t *testing.T) {
	assert.NotPanics(t, func() { password.Burn("anything") })
}
