package queries

import (
	"time"

	"navbat/internal/pkg/civil"

	"github.com/google/uuid"
)

// ShopListItem represents read-optimized shop data for the public listing
type ShopListItem struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Image       *string         `json:"image,omitempty"`
	Address     string          `json:"address"`
	Phone       string          `json:"phone"`
	Description *string         `json:"description,omitempty"`
	Price       int             `json:"price"`
	OpeningTime civil.TimeOfDay `json:"opening_time"`
	ClosingTime civil.TimeOfDay `json:"closing_time"`
	StaffCount  int             `json:"staff_count"`
}

// StaffView represents a shop employee in read responses
type StaffView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	IsActive bool      `json:"is_active"`
}

// QueueEntry is one booking in a shop's day queue, ordered by assigned time.
// Position is derived at read time over the day's non-cancelled bookings.
type QueueEntry struct {
	BookingID    uuid.UUID       `json:"booking_id"`
	CustomerName string          `json:"customer_name"`
	StaffName    string          `json:"staff_name"`
	TimeOfDay    civil.TimeOfDay `json:"time"`
	Position     int             `json:"position"`
	Status       string          `json:"status"`
}

// ShopDetailView represents a shop with its staff and the current day's queue
type ShopDetailView struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Image       *string         `json:"image,omitempty"`
	Address     string          `json:"address"`
	Phone       string          `json:"phone"`
	Description *string         `json:"description,omitempty"`
	Price       int             `json:"price"`
	OpeningTime civil.TimeOfDay `json:"opening_time"`
	ClosingTime civil.TimeOfDay `json:"closing_time"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	IsActive    bool            `json:"is_active"`
	Staff       []StaffView     `json:"staff"`
	TodayQueue  []QueueEntry    `json:"today_queue"`
}

// BookingView represents a customer's booking with its live queue position.
// QueuePosition is nil once the booking is no longer active.
type BookingView struct {
	ID            uuid.UUID       `json:"id"`
	ShopID        uuid.UUID       `json:"shop_id"`
	ShopName      string          `json:"shop_name"`
	ShopAddress   string          `json:"shop_address"`
	StaffName     string          `json:"staff_name"`
	Day           civil.Date      `json:"date"`
	TimeOfDay     civil.TimeOfDay `json:"time"`
	Status        string          `json:"status"`
	QueuePosition *int            `json:"queue_position,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// HistoryEntry represents one booking in a customer's history window
type HistoryEntry struct {
	ID          uuid.UUID       `json:"id"`
	ShopName    string          `json:"shop_name"`
	Day         civil.Date      `json:"date"`
	TimeOfDay   civil.TimeOfDay `json:"time"`
	Status      string          `json:"status"`
	CompletedAt *civil.DateTime `json:"completed_at,omitempty"`
}

// OwnerHistoryEntry is one booking in a shop's history window, seen by the
// owner, so it carries the customer's contact details instead of the shop's.
type OwnerHistoryEntry struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Day           civil.Date      `json:"date"`
	TimeOfDay     civil.TimeOfDay `json:"time"`
	Status        string          `json:"status"`
	CompletedAt   *civil.DateTime `json:"completed_at,omitempty"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Phone    string    `json:"phone"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

// UserListItem represents one account row in the admin user listing
type UserListItem struct {
	ID        uuid.UUID `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
