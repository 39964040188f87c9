package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID               uint64
	Username         string
	Email            string
	Role             string
	Bio              null.String
	ConfirmationCode string
	CreatedAt        time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
