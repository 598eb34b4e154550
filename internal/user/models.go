package user

import (
	"errors"
	"time"
)

// Role is the single flat role attached to every user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent:
		return true
	}
	return false
}

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("a user with this email already exists")
	ErrBadRole     = errors.New("unknown role")
	ErrNotStudent  = errors.New("user is not a student")
)

// User is the directory record shared by all roles. Role-specific fields are
// optional: StudentNo and ClassID apply to students, ParentChildIDs to parents.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Picture        string    `json:"picture,omitempty"`
	Role           Role      `json:"role"`
	StudentNo      string    `json:"student_id,omitempty"`
	ClassID        string    `json:"class_id,omitempty"`
	ParentChildIDs []string  `json:"parent_child_ids,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser carries the fields accepted on user creation.
type NewUser struct {
	Email          string
	Name           string
	Picture        string
	Role           Role
	StudentNo      string
	ClassID        string
	ParentChildIDs []string
}
