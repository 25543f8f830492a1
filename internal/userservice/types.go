package userservice

import (
	"database/sql"
	"time"
)

const AccessTokenTime time.Duration = 7 * 24 * time.Hour

var AnonymousUser = User{}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) IsAnonymous() bool {
	return u.ID == 0
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

type Token struct {
	Plain  string    `json:"token"`
	Hash   []byte    `json:"-"`
	UserID int       `json:"-"`
	Expiry time.Time `json:"expiry"`
}

type UserService struct {
	m *UserModel
}

type UserModel struct {
	db *sql.DB
}
