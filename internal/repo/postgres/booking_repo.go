package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voyagehub/travel-bookings/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	FindByID(ctx context.Context, id int64) (*domain.Booking, error)
	// GetJoined returns a booking with its package and owner email populated.
	GetJoined(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (bool, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingCols = `id, package_id, user_id, number_of_guests, total_price, status, booking_date, created_at, updated_at`

const joinedBookingQuery = `
	SELECT b.id, b.package_id, b.user_id, b.number_of_guests, b.total_price,
	       b.status, b.booking_date, b.created_at, b.updated_at,
	       p.id, p.title, p.destination, p.description, p.price, p.duration,
	       p.image, p.included, p.itinerary, p.is_active, p.created_by,
	       p.created_at, p.updated_at,
	       u.email
	FROM bookings b
	JOIN packages p ON p.id = b.package_id
	JOIN users u ON u.id = b.user_id`

func scanJoinedBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var p domain.Package
	err := row.Scan(
		&b.ID, &b.PackageID, &b.UserID, &b.NumberOfGuests, &b.TotalPrice,
		&b.Status, &b.BookingDate, &b.CreatedAt, &b.UpdatedAt,
		&p.ID, &p.Title, &p.Destination, &p.Description, &p.Price, &p.Duration,
		&p.Image, &p.Included, &p.Itinerary, &p.IsActive, &p.CreatedBy,
		&p.CreatedAt, &p.UpdatedAt,
		&b.UserEmail,
	)
	if err != nil {
		return nil, err
	}
	b.Package = &p
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	const q = `
		INSERT INTO bookings (package_id, user_id, number_of_guests, total_price, status, booking_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var created domain.Booking
	err := r.pool.QueryRow(ctx, q,
		b.PackageID, b.UserID, b.NumberOfGuests, b.TotalPrice, b.Status, b.BookingDate,
	).Scan(
		&created.ID, &created.PackageID, &created.UserID, &created.NumberOfGuests,
		&created.TotalPrice, &created.Status, &created.BookingDate,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&b.ID, &b.PackageID, &b.UserID, &b.NumberOfGuests, &b.TotalPrice,
		&b.Status, &b.BookingDate, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) GetJoined(ctx context.Context, id int64) (*domain.Booking, error) {
	const q = joinedBookingQuery + ` WHERE b.id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	b, err := scanJoinedBooking(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return b, err
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	const q = joinedBookingQuery + `
	WHERE b.user_id = $1
	ORDER BY b.created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	const q = joinedBookingQuery + `
	ORDER BY b.created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanJoinedBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (bool, error) {
	const q = `UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id, status)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() > 0, nil
}
