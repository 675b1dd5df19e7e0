package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		user, err := NewUser(UserConfig{
			ID:            uuid.New(),
			Username:      "trail_maker",
			PlainPassword: "c0rrect-horse-battery",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, user.PasswordHash)
		assert.True(t, user.VerifyPassword("c0rrect-horse-battery"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("rejected configs", func(t *testing.T) {
		testCases := []struct {
			name     string
			username string
			password string
		}{
			{"username too short", "ab", "c0rrect-horse-battery"},
			{"username with spaces", "trail maker", "c0rrect-horse-battery"},
			{"weak password", "trail_maker", "password"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewUser(UserConfig{
					ID:            uuid.New(),
					Username:      tc.username,
					PlainPassword: tc.password,
				})
				assert.Error(t, err)
			})
		}
	})
}
