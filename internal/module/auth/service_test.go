package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fixstack/deviceadmin/internal/domain"
	"github.com/fixstack/deviceadmin/internal/pkg"
)

type mockUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*domain.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.ErrAlreadyExists
		}
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) List(_ context.Context, req domain.PageRequest) (*domain.PageResult[domain.User], error) {
	return pkg.NewPageResult([]domain.User{}, 0, req), nil
}

func (m *mockUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func newTestAuth(t *testing.T) (Service, TokenService, *mockUserRepo) {
	t.Helper()
	tokens, err := NewTokenService("test-secret-0123456789-0123456789")
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	repo := newMockUserRepo()
	return NewService(tokens, repo, time.Hour), tokens, repo
}

func seedUser(t *testing.T, repo *mockUserRepo, email, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{Name: "Test User", Email: email, PasswordHash: string(hash), Role: domain.RoleStaff}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestLogin(t *testing.T) {
	t.Run("success returns parseable token", func(t *testing.T) {
		svc, tokens, repo := newTestAuth(t)
		user := seedUser(t, repo, "staff@example.com", "correct-horse")

		resp, err := svc.Login(context.Background(), "staff@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Token == "" {
			t.Fatal("expected a token")
		}
		if resp.ExpiresAt <= time.Now().Unix() {
			t.Errorf("expires_at = %d; want in the future", resp.ExpiresAt)
		}

		claims, err := tokens.Parse(resp.Token)
		if err != nil {
			t.Fatalf("parse issued token: %v", err)
		}
		if claims.UserID != user.ID || claims.Role != domain.RoleStaff {
			t.Errorf("claims = %+v", claims)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _, repo := newTestAuth(t)
		seedUser(t, repo, "staff@example.com", "correct-horse")

		if _, err := svc.Login(context.Background(), "staff@example.com", "battery-staple"); !domain.IsUnauthorized(err) {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})

	t.Run("email is case-insensitive", func(t *testing.T) {
		svc, _, repo := newTestAuth(t)
		seedUser(t, repo, "staff@example.com", "correct-horse")

		if _, err := svc.Login(context.Background(), "  Staff@Example.COM ", "correct-horse"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _, _ := newTestAuth(t)

		if _, err := svc.Login(context.Background(), "nobody@example.com", "whatever"); !domain.IsUnauthorized(err) {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  bool
	}{
		{"success", "New Staff", "new@example.com", "longenough", false},
		{"trims name", "  Padded  ", "padded@example.com", "longenough", false},
		{"lowercases email", "New Staff", "Mixed@Example.COM", "longenough", false},
		{"missing name", "", "new@example.com", "longenough", true},
		{"name too long", strings.Repeat("x", 101), "new@example.com", "longenough", true},
		{"bad email", "New Staff", "not-an-email", "longenough", true},
		{"short password", "New Staff", "new@example.com", "short", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestAuth(t)

			user, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			if tt.wantErr {
				if !domain.IsValidation(err) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.ID == 0 {
				t.Error("expected ID to be set")
			}
			if user.Name != strings.TrimSpace(tt.userName) {
				t.Errorf("name = %q", user.Name)
			}
			if user.Email != strings.ToLower(strings.TrimSpace(tt.email)) {
				t.Errorf("email = %q; want lowercased", user.Email)
			}
			if user.Role != domain.RoleStaff {
				t.Errorf("role = %q; want %q", user.Role, domain.RoleStaff)
			}
			if user.PasswordHash == tt.password {
				t.Error("password stored in clear")
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, repo := newTestAuth(t)
	seedUser(t, repo, "taken@example.com", "longenough")

	if _, err := svc.Register(context.Background(), "Second", "taken@example.com", "longenough"); !domain.IsAlreadyExists(err) {
		t.Errorf("expected already exists, got %v", err)
	}
}

func TestTokenService(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		tokens, err := NewTokenService("test-secret-0123456789-0123456789")
		if err != nil {
			t.Fatalf("new: %v", err)
		}

		token, expiresAt, err := tokens.Generate(42, domain.RoleAdmin, time.Hour)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !expiresAt.After(time.Now()) {
			t.Errorf("expiresAt = %v; want in the future", expiresAt)
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if claims.UserID != 42 || claims.Role != domain.RoleAdmin {
			t.Errorf("claims = %+v", claims)
		}
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		a, _ := NewTokenService("secret-a-0123456789-0123456789")
		b, _ := NewTokenService("secret-b-0123456789-0123456789")

		token, _, err := a.Generate(1, domain.RoleStaff, time.Hour)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if _, err := b.Parse(token); err == nil {
			t.Error("expected parse to fail with a different secret")
		}
	})

	t.Run("rejects expired token", func(t *testing.T) {
		tokens, _ := NewTokenService("test-secret-0123456789-0123456789")

		token, _, err := tokens.Generate(1, domain.RoleStaff, -time.Minute)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if _, err := tokens.Parse(token); err == nil {
			t.Error("expected parse to fail for an expired token")
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		tokens, _ := NewTokenService("test-secret-0123456789-0123456789")
		if _, err := tokens.Parse("not.a.token"); err == nil {
			t.Error("expected parse to fail")
		}
	})

	t.Run("empty secret rejected", func(t *testing.T) {
		if _, err := NewTokenService(""); err == nil {
			t.Error("expected error for empty secret")
		}
	})
}
