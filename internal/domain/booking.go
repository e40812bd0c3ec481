package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// transitions is the authoritative lifecycle table. Confirmed and cancelled
// are terminal; nothing leaves them.
var transitions = map[BookingStatus][]BookingStatus{
	BookingPending: {BookingConfirmed, BookingCancelled},
}

func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Booking reserves guests against one package for one user. TotalPrice is a
// snapshot taken at creation; later edits to the package price never touch it.
type Booking struct {
	ID             int64         `json:"id"`
	PackageID      int64         `json:"package_id"`
	UserID         int64         `json:"user_id"`
	NumberOfGuests int           `json:"number_of_guests"`
	TotalPrice     float64       `json:"total_price"`
	Status         BookingStatus `json:"status"`
	BookingDate    time.Time     `json:"booking_date"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	// Joined projections, present on reads only.
	Package   *Package `json:"package,omitempty"`
	UserEmail string   `json:"user_email,omitempty"`
}

type CreateBookingRequest struct {
	PackageID      int64 `json:"package_id"`
	NumberOfGuests int   `json:"number_of_guests"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

func (r *CreateBookingRequest) Validate() error {
	if r.PackageID <= 0 {
		return fmt.Errorf("%w: package_id is required", ErrValidation)
	}
	if r.NumberOfGuests < 1 {
		return fmt.Errorf("%w: at least one guest is required", ErrValidation)
	}
	return nil
}
