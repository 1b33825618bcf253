package domain

import "time"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Profile   *Profile  `json:"profile,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Address struct {
	Local     string `json:"local"`
	Permanent string `json:"permanent"`
	Office    string `json:"office"`
}

type ProfileContact struct {
	Office    string `json:"office"`
	Residence string `json:"residence"`
}

// Profile holds the optional contact and professional details a member
// keeps on file. Application forms are pre-filled from it.
type Profile struct {
	Name        string         `json:"name"`
	Mobile      string         `json:"mobile"`
	Profession  string         `json:"profession"`
	Address     Address        `json:"address"`
	Contact     ProfileContact `json:"contact"`
	Position    string         `json:"position"`
	Education   string         `json:"education"`
	DateOfBirth string         `json:"date_of_birth"`
}

// SessionUser is the snapshot kept for a logged-in session.
type SessionUser struct {
	ID      uint     `json:"id"`
	Email   string   `json:"email"`
	Name    string   `json:"name"`
	Role    Role     `json:"role"`
	Profile *Profile `json:"profile,omitempty"`
}

func NewSessionUser(u User) SessionUser {
	return SessionUser{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Role:    u.Role,
		Profile: u.Profile,
	}
}

func (s SessionUser) User() User {
	return User{
		ID:      s.ID,
		Email:   s.Email,
		Name:    s.Name,
		Role:    s.Role,
		Profile: s.Profile,
	}
}
