package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             int64
	Username       string
	Email          string
	PasswordHash   string
	Name           string
	Surname        string
	Age            *int32
	Bio            *string
	ProfilePicture *string
	IsAdmin        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role is derived from IsAdmin, the only stored admin flag.
func (u User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// ProfilePatch holds the editable profile fields. Nil fields are left unchanged.
type ProfilePatch struct {
	Email          *string
	Name           *string
	Surname        *string
	Age            *int32
	Bio            *string
	ProfilePicture *string
}

func (p ProfilePatch) Empty() bool {
	return p.Email == nil && p.Name == nil && p.Surname == nil &&
		p.Age == nil && p.Bio == nil && p.ProfilePicture == nil
}
