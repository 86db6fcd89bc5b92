package domain

import "time"

// UserRole enumerates portal roles.
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleSupport UserRole = "support"
	UserRoleUser    UserRole = "user"
)

// Valid reports whether the role is one of the enumerated values.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleSupport, UserRoleUser:
		return true
	}
	return false
}

// CanBeAssignee reports whether tickets may be assigned to this role.
func (r UserRole) CanBeAssignee() bool {
	return r == UserRoleAdmin || r == UserRoleSupport
}

// UserStatus represents lifecycle states for a portal account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusPending  UserStatus = "pending"
	UserStatusInactive UserStatus = "inactive"
)

// User is the domain model for portal accounts: requesters, support staff
// and administrators, differentiated only by role.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         UserRole
	Department   string
	Market       string
	Status       UserStatus
	CreatedAt    time.Time
}
