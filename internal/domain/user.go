package domain

import (
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type UserRole string

const (
	UserRoleClient     UserRole = "client"
	UserRoleFreelancer UserRole = "freelancer"
)

type CreateUserDTO struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         UserRole
}

type Client struct {
	ID               int64     `json:"id"`
	UserID           *int64    `json:"user_id,omitempty"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Company          string    `json:"company,omitempty"`
	StripeCustomerID *string   `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}

type CreateClientDTO struct {
	UserID  *int64
	Name    string
	Email   string
	Company string
}

// Identity is the authenticated principal of a request. ClientID is set only
// for users holding the client role and is never taken from request input.
type Identity struct {
	UserID   int64    `json:"user_id"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	ClientID *int64   `json:"client_id,omitempty"`
}

func (i Identity) IsFreelancer() bool {
	return i.Role == UserRoleFreelancer
}

func (i Identity) Owns(a *Appointment) bool {
	return i.ClientID != nil && a != nil && *i.ClientID == a.ClientID
}
