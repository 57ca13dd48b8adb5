package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devrahulm/vidtube-server/internal/models"
)

func TestUser_SetPassword(t *testing.T) {
	var user models.User

	require.NoError(t, user.SetPassword("secret123"))
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("secret124"))
}

func TestUser_SetPassword_RejectsEmpty(t *testing.T) {
	var user models.User
	require.Error(t, user.SetPassword(""))
	assert.Empty(t, user.Password)
}

func TestUser_SetPassword_Rehashes(t *testing.T) {
	var user models.User
	require.NoError(t, user.SetPassword("first"))
	firstHash := user.Password

	require.NoError(t, user.SetPassword("second"))
	assert.NotEqual(t, firstHash, user.Password)
	assert.False(t, user.CheckPassword("first"))
	assert.True(t, user.CheckPassword("second"))
}

func TestUser_JSONOmitsSecrets(t *testing.T) {
	token := "some-refresh-token"
	user := models.User{
		Username:     "alice",
		Email:        "a@x.com",
		FullName:     "Alice A",
		AvatarURL:    "https://cdn.example.com/avatars/a.png",
		RefreshToken: &token,
	}
	require.NoError(t, user.SetPassword("secret123"))

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "refreshToken")
	assert.Equal(t, "alice", fields["username"])
}
