package userservice

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gourab8389/blog-author/internal/common"
)

var ErrAuthenticationFailure = fmt.Errorf("unauthorized access")

// NewUserService wires the authentication boundary. Users are provisioned
// out-of-band; this service only verifies credentials and resolves tokens.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{m: newUserModel(db)}
}

// Login verifies the username and password and issues an access token.
func (s *UserService) Login(ctx context.Context, username, password string) (*Token, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	match, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !match {
		return nil, ErrAuthenticationFailure
	}

	token, err := newToken(user.ID, AccessTokenTime)
	if err != nil {
		return nil, err
	}

	err = s.m.insertToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return token, nil
}

// GetUserByAccessToken resolves a bearer token to its user.
func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	validateToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserByTokenHash(ctx, hashToken(token))
}
