package entity

import (
	"errors"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

// Role is a closed set. Anything outside it fails ParseRole; permission
// checks switch exhaustively so an unknown role can never default to allow.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleUser:
		return Role(s), nil
	default:
		return "", errors.New("unknown role: " + s)
	}
}

// User carries the role and the explicit pipeline entitlement list. The
// pipeline list is ignored for admins, who have implicit access to all.
type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      Role     `json:"role"`
	Pipelines []string `json:"pipelines"`
}

func NewUser(name, email string, role Role, pipelines []string) *User {
	return &User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Role:      role,
		Pipelines: pipelines,
	}
}

func (u *User) HasPipeline(pipelineID string) bool {
	for _, p := range u.Pipelines {
		if p == pipelineID {
			return true
		}
	}
	return false
}

type UserStoreInterface interface {
	FindByID(id string) (*User, error)
	List() []User
	Create(u *User) error
	Update(u *User) error
}
