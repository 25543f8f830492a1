package userservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gourab8389/blog-author/internal/common"
)

func TestPasswordSetAndCompare(t *testing.T) {
	var p Password
	err := p.Set("correct horse battery")
	assert.NoError(t, err)

	match, err := p.compare("correct horse battery")
	assert.NoError(t, err)
	assert.True(t, match)

	match, err = p.compare("wrong password")
	assert.NoError(t, err)
	assert.False(t, match)
}

func TestNewToken(t *testing.T) {
	token, err := newToken(1, AccessTokenTime)
	assert.NoError(t, err)
	assert.Len(t, token.Plain, 26)
	assert.Equal(t, hashToken(token.Plain), token.Hash)

	other, err := newToken(1, AccessTokenTime)
	assert.NoError(t, err)
	assert.NotEqual(t, token.Plain, other.Plain)
}

func TestLoginAndGetUserByAccessToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := common.TestDB("file://../../migrations", t)
	s := NewUserService(db)

	var p Password
	err := p.Set("testpassword")
	assert.NoError(t, err)

	_, err = db.Exec(`INSERT INTO users (username, email, password) VALUES ($1, $2, $3)`, "testuser", "testuser@example.com", p.hash)
	assert.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := s.Login(context.Background(), "testuser", "testpassword")
		assert.NoError(t, err)
		assert.NotEmpty(t, token.Plain)

		user, err := s.GetUserByAccessToken(context.Background(), token.Plain)
		assert.NoError(t, err)
		assert.Equal(t, "testuser", user.Username)
		assert.False(t, user.IsAnonymous())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(context.Background(), "testuser", "wrongpassword")
		assert.ErrorIs(t, err, ErrAuthenticationFailure)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := s.Login(context.Background(), "nobodyhome", "testpassword")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := s.GetUserByAccessToken(context.Background(), "AAAAAAAAAAAAAAAAAAAAAAAAAA")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
