package service

import (
	"context"
	"fmt"
	"time"

	"github.com/voyagehub/travel-bookings/internal/domain"
	"github.com/voyagehub/travel-bookings/internal/repo/postgres"
	"github.com/voyagehub/travel-bookings/pkg/events"
	"github.com/voyagehub/travel-bookings/pkg/logger"
)

// BookingService drives the booking lifecycle. Status changes follow the
// transition table in domain; the total price is snapshot at creation and
// never recomputed.
type BookingService interface {
	Create(ctx context.Context, requester domain.Identity, req *domain.CreateBookingRequest) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, requester domain.Identity) (*domain.Booking, error)
}

type bookingService struct {
	bookings postgres.BookingRepository
	packages postgres.PackageRepository
	bus      events.Publisher
}

func NewBookingService(bookings postgres.BookingRepository, packages postgres.PackageRepository, bus events.Publisher) BookingService {
	return &bookingService{bookings: bookings, packages: packages, bus: bus}
}

func (s *bookingService) Create(ctx context.Context, requester domain.Identity, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pkg, err := s.packages.FindByID(ctx, req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve package: %w", err)
	}
	if pkg == nil {
		return nil, fmt.Errorf("package: %w", domain.ErrNotFound)
	}

	// Price snapshot: later edits to the package price never alter this
	// booking's total.
	booking := &domain.Booking{
		PackageID:      pkg.ID,
		UserID:         requester.ID,
		NumberOfGuests: req.NumberOfGuests,
		TotalPrice:     pkg.Price * float64(req.NumberOfGuests),
		Status:         domain.BookingPending,
		BookingDate:    time.Now(),
	}

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	joined, err := s.bookings.GetJoined(ctx, created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	event := events.BookingCreatedEvent{
		BookingID:  joined.ID,
		PackageID:  joined.PackageID,
		UserID:     joined.UserID,
		UserEmail:  joined.UserEmail,
		Guests:     joined.NumberOfGuests,
		TotalPrice: joined.TotalPrice,
		CreatedAt:  joined.CreatedAt,
	}
	if err := s.bus.Publish(ctx, events.BookingCreated, event); err != nil {
		logger.ErrorContext(ctx, "failed to publish booking created event", "error", err, "booking_id", joined.ID)
	}

	return joined, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Booking, error) {
	target, ok := domain.ParseBookingStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking: %w", domain.ErrNotFound)
	}

	if !booking.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, booking.Status, target)
	}

	// Read-then-write without a version check: the row update is the only
	// ordering guarantee between concurrent transitions.
	if _, err := s.bookings.UpdateStatus(ctx, id, target); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	joined, err := s.bookings.GetJoined(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	event := events.BookingStatusChangedEvent{
		BookingID: id,
		From:      string(booking.Status),
		To:        string(target),
		ChangedAt: time.Now(),
	}
	if err := s.bus.Publish(ctx, events.BookingStatusChanged, event); err != nil {
		logger.ErrorContext(ctx, "failed to publish status changed event", "error", err, "booking_id", id)
	}

	return joined, nil
}

// Cancel requires the requester to own the booking or be an admin, and only
// pending bookings can be cancelled.
func (s *bookingService) Cancel(ctx context.Context, id int64, requester domain.Identity) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking: %w", domain.ErrNotFound)
	}

	if !requester.IsAdmin() && booking.UserID != requester.ID {
		return nil, fmt.Errorf("%w: not the booking owner", domain.ErrForbidden)
	}

	if !booking.Status.CanTransitionTo(domain.BookingCancelled) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, booking.Status, domain.BookingCancelled)
	}

	if _, err := s.bookings.UpdateStatus(ctx, id, domain.BookingCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	joined, err := s.bookings.GetJoined(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	reason := "owner_requested"
	if requester.IsAdmin() && booking.UserID != requester.ID {
		reason = "admin_cancelled"
	}
	event := events.BookingCancelledEvent{
		BookingID:   id,
		CancelledBy: requester.ID,
		Reason:      reason,
		CancelledAt: time.Now(),
	}
	if err := s.bus.Publish(ctx, events.BookingCancelled, event); err != nil {
		logger.ErrorContext(ctx, "failed to publish booking cancelled event", "error", err, "booking_id", id)
	}

	return joined, nil
}
