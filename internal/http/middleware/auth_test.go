package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/voyagehub/travel-bookings/internal/domain"
	"github.com/voyagehub/travel-bookings/internal/http/middleware"
	"github.com/voyagehub/travel-bookings/internal/platform/auth"
)

// ---------- Mocks ----------

type mockUserRepo struct {
	users map[int64]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, email, passwordHash string, role domain.Role) (*domain.User, error) {
	id := int64(len(m.users) + 1)
	u := &domain.User{ID: id, Email: email, PasswordHash: passwordHash, Role: role}
	m.users[id] = u
	return u, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	return m.users[id], nil
}

// ---------- Helpers ----------

func newGate(t *testing.T) (*auth.Tokens, *mockUserRepo, *middleware.Authenticator) {
	t.Helper()
	tokens := auth.NewTokens("test-secret", time.Hour)
	users := newMockUserRepo()
	return tokens, users, middleware.NewAuthenticator(tokens, users)
}

func okHandler(reached *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		w.WriteHeader(http.StatusOK)
	})
}

// ---------- Tests ----------

func TestAuthenticateNoHeader(t *testing.T) {
	_, _, authn := newGate(t)

	reached := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/bookings/my-bookings", nil)

	authn.Authenticate(okHandler(&reached)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if reached {
		t.Error("inner handler must not run without a token")
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	_, _, authn := newGate(t)

	reached := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	authn.Authenticate(okHandler(&reached)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if reached {
		t.Error("inner handler must not run with an invalid token")
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	_, users, authn := newGate(t)
	u, _ := users.Create(context.Background(), "a@example.com", "hash", domain.RoleUser)

	expired := auth.NewTokens("test-secret", -time.Minute)
	tok, err := expired.Issue(u.ID)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	reached := false
	authn.Authenticate(okHandler(&reached)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateDeletedUser(t *testing.T) {
	tokens, _, authn := newGate(t)

	// Token for a user id that no longer resolves.
	tok, err := tokens.Issue(99)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	reached := false
	authn.Authenticate(okHandler(&reached)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if reached {
		t.Error("inner handler must not run for a deleted user")
	}
}

func TestAuthenticateAttachesIdentity(t *testing.T) {
	tokens, users, authn := newGate(t)
	u, _ := users.Create(context.Background(), "a@example.com", "hash", domain.RoleAdmin)

	tok, err := tokens.Issue(u.ID)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var got domain.Identity
	var ok bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = middleware.IdentityFrom(r)
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	authn.Authenticate(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !ok {
		t.Fatal("identity missing from context")
	}
	if got.ID != u.ID || got.Email != "a@example.com" || got.Role != domain.RoleAdmin {
		t.Errorf("unexpected identity: %+v", got)
	}
}

func TestRequireRolesDeniesUser(t *testing.T) {
	tokens, users, authn := newGate(t)
	u, _ := users.Create(context.Background(), "u@example.com", "hash", domain.RoleUser)

	tok, _ := tokens.Issue(u.ID)

	reached := false
	chain := authn.Authenticate(middleware.RequireRoles(domain.RoleAdmin)(okHandler(&reached)))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	chain.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	if reached {
		t.Error("inner handler must not run for a denied role")
	}
}

func TestRequireRolesAllowsAdmin(t *testing.T) {
	tokens, users, authn := newGate(t)
	u, _ := users.Create(context.Background(), "admin@example.com", "hash", domain.RoleAdmin)

	tok, _ := tokens.Issue(u.ID)

	reached := false
	chain := authn.Authenticate(middleware.RequireRoles(domain.RoleAdmin)(okHandler(&reached)))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	chain.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !reached {
		t.Error("inner handler should run for an admin")
	}
}

func TestRequireRolesFailsClosedWithoutIdentity(t *testing.T) {
	reached := false
	handler := middleware.RequireRoles(domain.RoleAdmin)(okHandler(&reached))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	if reached {
		t.Error("inner handler must not run without an identity")
	}
}
