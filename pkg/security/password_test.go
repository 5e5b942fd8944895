package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userbase/backend/pkg/security"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "password123",
			wantErr:  false,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := security.HashPassword(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)
			assert.True(t, security.VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := security.HashPassword("password123")
	require.NoError(t, err)

	second, err := security.HashPassword("password123")
	require.NoError(t, err)

	// Same plaintext, different salt, different hash.
	assert.NotEqual(t, first, second)
	assert.True(t, security.VerifyPassword("password123", first))
	assert.True(t, security.VerifyPassword("password123", second))
}

func TestVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{
			name:     "matching password",
			password: "correct horse battery staple",
			hash:     hash,
			want:     true,
		},
		{
			name:     "wrong password",
			password: "wrong",
			hash:     hash,
			want:     false,
		},
		{
			name:     "malformed hash verifies false, does not panic",
			password: "anything",
			hash:     "not-a-bcrypt-hash",
			want:     false,
		},
		{
			name:     "empty hash",
			password: "anything",
			hash:     "",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, security.VerifyPassword(tt.password, tt.hash))
		})
	}
}
