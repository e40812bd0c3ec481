package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/voyagehub/travel-bookings/internal/domain"
)

// In-memory stand-ins for the postgres repositories.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, email, passwordHash string, role domain.Role) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := &domain.User{
		ID:           f.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.users[u.ID] = u
	f.nextID++
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

type fakePackageRepo struct {
	nextID   int64
	packages map[int64]*domain.Package
}

func newFakePackageRepo() *fakePackageRepo {
	return &fakePackageRepo{nextID: 1, packages: make(map[int64]*domain.Package)}
}

func (f *fakePackageRepo) Create(_ context.Context, req *domain.CreatePackageRequest, createdBy int64) (*domain.Package, error) {
	p := &domain.Package{
		ID:          f.nextID,
		Title:       req.Title,
		Destination: req.Destination,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Image:       req.Image,
		Included:    req.Included,
		Itinerary:   req.Itinerary,
		IsActive:    true,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.packages[p.ID] = p
	f.nextID++
	return p, nil
}

func (f *fakePackageRepo) FindByID(_ context.Context, id int64) (*domain.Package, error) {
	return f.packages[id], nil
}

func (f *fakePackageRepo) ListActive(_ context.Context) ([]domain.Package, error) {
	var out []domain.Package
	for _, p := range f.packages {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePackageRepo) Update(_ context.Context, id int64, req *domain.UpdatePackageRequest) (*domain.Package, error) {
	p, ok := f.packages[id]
	if !ok {
		return nil, nil
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	p.UpdatedAt = time.Now()
	return p, nil
}

func (f *fakePackageRepo) Deactivate(_ context.Context, id int64) (bool, error) {
	p, ok := f.packages[id]
	if !ok {
		return false, nil
	}
	p.IsActive = false
	return true, nil
}

type fakeBookingRepo struct {
	nextID   int64
	clock    time.Time
	bookings map[int64]*domain.Booking
	packages *fakePackageRepo
	users    *fakeUserRepo
}

func newFakeBookingRepo(packages *fakePackageRepo, users *fakeUserRepo) *fakeBookingRepo {
	return &fakeBookingRepo{
		nextID:   1,
		clock:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		bookings: make(map[int64]*domain.Booking),
		packages: packages,
		users:    users,
	}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.clock = f.clock.Add(time.Second)
	created := *b
	created.ID = f.nextID
	created.CreatedAt = f.clock
	created.UpdatedAt = f.clock
	f.bookings[created.ID] = &created
	f.nextID++
	return &created, nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetJoined(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	return f.join(*b), nil
}

func (f *fakeBookingRepo) join(b domain.Booking) *domain.Booking {
	if pkg := f.packages.packages[b.PackageID]; pkg != nil {
		copied := *pkg
		b.Package = &copied
	}
	if u := f.users.users[b.UserID]; u != nil {
		b.UserEmail = u.Email
	}
	return &b
}

func (f *fakeBookingRepo) ListByUser(_ context.Context, userID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *f.join(*b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeBookingRepo) ListAll(_ context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.bookings {
		out = append(out, *f.join(*b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) (bool, error) {
	b, ok := f.bookings[id]
	if !ok {
		return false, nil
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return true, nil
}

// recordingPublisher captures published subjects.
type recordingPublisher struct {
	subjects []string
}

func (r *recordingPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	r.subjects = append(r.subjects, subject)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }
