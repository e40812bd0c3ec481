package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voyagehub/travel-bookings/internal/domain"
)

type PackageRepository interface {
	Create(ctx context.Context, req *domain.CreatePackageRequest, createdBy int64) (*domain.Package, error)
	// FindByID resolves packages regardless of is_active so existing
	// bookings keep a resolvable reference after deactivation.
	FindByID(ctx context.Context, id int64) (*domain.Package, error)
	ListActive(ctx context.Context) ([]domain.Package, error)
	Update(ctx context.Context, id int64, req *domain.UpdatePackageRequest) (*domain.Package, error)
	Deactivate(ctx context.Context, id int64) (bool, error)
}

type packageRepository struct {
	pool *pgxpool.Pool
}

func NewPackageRepository(pool *pgxpool.Pool) PackageRepository {
	return &packageRepository{pool: pool}
}

const packageCols = `id, title, destination, description, price, duration, image, included, itinerary, is_active, created_by, created_at, updated_at`

func scanPackage(row pgx.Row, p *domain.Package) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Destination, &p.Description, &p.Price, &p.Duration,
		&p.Image, &p.Included, &p.Itinerary, &p.IsActive, &p.CreatedBy,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *packageRepository) Create(ctx context.Context, req *domain.CreatePackageRequest, createdBy int64) (*domain.Package, error) {
	const q = `
		INSERT INTO packages (title, destination, description, price, duration, image, included, itinerary, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + packageCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p domain.Package
	err := scanPackage(r.pool.QueryRow(ctx, q,
		req.Title, req.Destination, req.Description, req.Price, req.Duration,
		req.Image, req.Included, req.Itinerary, createdBy,
	), &p)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *packageRepository) FindByID(ctx context.Context, id int64) (*domain.Package, error) {
	const q = `SELECT ` + packageCols + ` FROM packages WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p domain.Package
	err := scanPackage(r.pool.QueryRow(ctx, q, id), &p)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *packageRepository) ListActive(ctx context.Context) ([]domain.Package, error) {
	const q = `
		SELECT p.id, p.title, p.destination, p.description, p.price, p.duration,
		       p.image, p.included, p.itinerary, p.is_active, p.created_by,
		       p.created_at, p.updated_at, u.email
		FROM packages p
		JOIN users u ON u.id = p.created_by
		WHERE p.is_active
		ORDER BY p.created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []domain.Package
	for rows.Next() {
		var p domain.Package
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Destination, &p.Description, &p.Price, &p.Duration,
			&p.Image, &p.Included, &p.Itinerary, &p.IsActive, &p.CreatedBy,
			&p.CreatedAt, &p.UpdatedAt, &p.CreatorEmail,
		); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}

	return packages, rows.Err()
}

func (r *packageRepository) Update(ctx context.Context, id int64, req *domain.UpdatePackageRequest) (*domain.Package, error) {
	const q = `
		UPDATE packages
		SET
			title = COALESCE($2, title),
			destination = COALESCE($3, destination),
			description = COALESCE($4, description),
			price = COALESCE($5, price),
			duration = COALESCE($6, duration),
			image = COALESCE($7, image),
			included = COALESCE($8, included),
			itinerary = COALESCE($9, itinerary),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + packageCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p domain.Package
	err := scanPackage(r.pool.QueryRow(ctx, q, id,
		req.Title, req.Destination, req.Description, req.Price, req.Duration,
		req.Image, req.Included, req.Itinerary,
	), &p)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *packageRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	const q = `UPDATE packages SET is_active = false, updated_at = now() WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() > 0, nil
}
