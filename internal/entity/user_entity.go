package entity

import "time"

type UserRole string

const (
	UserRoleMember UserRole = "member"
	UserRoleAdmin  UserRole = "admin"
)

// UserProfile is the session's view of the signed-in user. Fields beyond Id
// are display-only.
type UserProfile struct {
	Id        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u UserProfile) DisplayRole() string {
	if u.Role == "" {
		return "Member"
	}
	return string(u.Role)
}

// User is the devstore's stored account.
type User struct {
	UserProfile
	Country      string
	PasswordHash string
}
