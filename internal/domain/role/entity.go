package role

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a role could not be located.
	ErrNotFound = errors.New("role not found")
	// ErrNameExists signals a duplicate role name.
	ErrNameExists = errors.New("role name already exists")
	// ErrInUse means the role is still assigned to at least one user.
	ErrInUse = errors.New("role is assigned to existing users")
)

const (
	// Administrator grants full access to every endpoint.
	Administrator = "Administrator"
	// Common is the default role assigned at registration and to tokens
	// minted for users without an explicit role.
	Common = "Common"
)

// Role is an access-control tag. Roles are flat: membership is checked by
// exact name, there is no hierarchy or inheritance.
type Role struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
