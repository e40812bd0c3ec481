package service

import (
	"context"
	"fmt"

	"github.com/voyagehub/travel-bookings/internal/domain"
	"github.com/voyagehub/travel-bookings/internal/repo/postgres"
	"github.com/voyagehub/travel-bookings/pkg/logger"
)

type PackageService interface {
	List(ctx context.Context) ([]domain.Package, error)
	Get(ctx context.Context, id int64) (*domain.Package, error)
	Create(ctx context.Context, creator domain.Identity, req *domain.CreatePackageRequest) (*domain.Package, error)
	Update(ctx context.Context, id int64, req *domain.UpdatePackageRequest) (*domain.Package, error)
	Delete(ctx context.Context, id int64) error
}

type packageService struct {
	packages postgres.PackageRepository
}

func NewPackageService(packages postgres.PackageRepository) PackageService {
	return &packageService{packages: packages}
}

func (s *packageService) List(ctx context.Context) ([]domain.Package, error) {
	packages, err := s.packages.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

func (s *packageService) Get(ctx context.Context, id int64) (*domain.Package, error) {
	pkg, err := s.packages.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return nil, fmt.Errorf("package: %w", domain.ErrNotFound)
	}
	return pkg, nil
}

func (s *packageService) Create(ctx context.Context, creator domain.Identity, req *domain.CreatePackageRequest) (*domain.Package, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pkg, err := s.packages.Create(ctx, req, creator.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	logger.InfoContext(ctx, "package created", "package_id", pkg.ID, "created_by", creator.ID)

	return pkg, nil
}

func (s *packageService) Update(ctx context.Context, id int64, req *domain.UpdatePackageRequest) (*domain.Package, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pkg, err := s.packages.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}
	if pkg == nil {
		return nil, fmt.Errorf("package: %w", domain.ErrNotFound)
	}
	return pkg, nil
}

// Delete soft-deletes: the package is deactivated, never removed, so
// bookings that reference it stay resolvable.
func (s *packageService) Delete(ctx context.Context, id int64) error {
	ok, err := s.packages.Deactivate(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	if !ok {
		return fmt.Errorf("package: %w", domain.ErrNotFound)
	}
	return nil
}
