package shop

import (
	"errors"
	"strings"
	"time"

	"navbat/internal/pkg/civil"

	"github.com/google/uuid"
)

var (
	ErrInvalidName    = errors.New("shop name must not be empty")
	ErrInvalidAddress = errors.New("shop address must not be empty")
	ErrInvalidPhone   = errors.New("shop phone must not be empty")
	ErrInvalidPrice   = errors.New("price must be a positive amount")
)

// Shop is a service location. The booking core only reads it: opening and
// closing times, the active flag and the owning barber account are inputs to
// allocation and permission checks, never mutated here.
type Shop struct {
	id          uuid.UUID
	name        string
	image       *string
	address     string
	phone       string
	description *string
	price       int
	openingTime civil.TimeOfDay
	closingTime civil.TimeOfDay
	ownerID     uuid.UUID
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewShop(
	name string,
	image *string,
	address, phone string,
	description *string,
	price int,
	openingTime, closingTime civil.TimeOfDay,
	ownerID uuid.UUID,
) (*Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrInvalidAddress
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrInvalidPhone
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	return &Shop{
		id:          uuid.New(),
		name:        name,
		image:       image,
		address:     address,
		phone:       phone,
		description: description,
		price:       price,
		openingTime: openingTime,
		closingTime: closingTime,
		ownerID:     ownerID,
		isActive:    true,
	}, nil
}

func ReconstructShop(
	id uuid.UUID,
	name string,
	image *string,
	address, phone string,
	description *string,
	price int,
	openingTime, closingTime civil.TimeOfDay,
	ownerID uuid.UUID,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Shop {
	return &Shop{
		id:          id,
		name:        name,
		image:       image,
		address:     address,
		phone:       phone,
		description: description,
		price:       price,
		openingTime: openingTime,
		closingTime: closingTime,
		ownerID:     ownerID,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (s *Shop) ID() uuid.UUID                { return s.id }
func (s *Shop) Name() string                 { return s.name }
func (s *Shop) Image() *string               { return s.image }
func (s *Shop) Address() string              { return s.address }
func (s *Shop) Phone() string                { return s.phone }
func (s *Shop) Description() *string         { return s.description }
func (s *Shop) Price() int                   { return s.price }
func (s *Shop) OpeningTime() civil.TimeOfDay { return s.openingTime }
func (s *Shop) ClosingTime() civil.TimeOfDay { return s.closingTime }
func (s *Shop) OwnerID() uuid.UUID           { return s.ownerID }
func (s *Shop) IsActive() bool               { return s.isActive }
func (s *Shop) CreatedAt() time.Time         { return s.createdAt }
func (s *Shop) UpdatedAt() time.Time         { return s.updatedAt }

// StaffMember is an employee of a shop who can be assigned bookings.
// Read-only to the booking core.
type StaffMember struct {
	ID       uuid.UUID
	ShopID   uuid.UUID
	Name     string
	IsActive bool
}
