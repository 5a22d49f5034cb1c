package user

import (
	"time"

	"github.com/google/uuid"
)

// User entity. Customers, barbers and administrators share one account type;
// the role decides what they may do.
type User struct {
	id           uuid.UUID
	phone        Phone
	name         Name
	passwordHash string
	role         Role
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(phone Phone, name Name, passwordHash string, role Role) *User {
	return &User{
		id:           uuid.New(),
		phone:        phone,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
	}
}

func ReconstructUser(
	id uuid.UUID,
	phone Phone,
	name Name,
	passwordHash string,
	role Role,
	isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		phone:        phone,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Phone() Phone         { return u.phone }
func (u *User) Name() Name           { return u.name }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
