package user

import (
	"context"
	"strings"
	"testing"

	"github.com/fixstack/deviceadmin/internal/domain"
	"github.com/fixstack/deviceadmin/internal/pkg"
)

type mockUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newMockRepo() *mockUserRepo {
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
	items := make([]domain.User, 0, len(m.users))
	for id := uint(1); id < m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			items = append(items, *u)
		}
	}
	return pkg.NewPageResult(items, int64(len(items)), req), nil
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

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		role     string
		wantErr  bool
		wantRole string
	}{
		{"admin role", "Alice Admin", "alice@example.com", "admin", false, "admin"},
		{"role normalized to lowercase", "Bob Staff", "bob@example.com", "ADMIN", false, "admin"},
		{"empty role defaults to staff", "Carol", "carol@example.com", "", false, "staff"},
		{"unknown role", "Dave", "dave@example.com", "superuser", true, ""},
		{"missing name", "", "x@example.com", "staff", true, ""},
		{"name too short", "X", "x@example.com", "staff", true, ""},
		{"name too long", strings.Repeat("x", 101), "x@example.com", "staff", true, ""},
		{"missing email", "Eve", "", "staff", true, ""},
		{"bad email", "Eve", "not-an-email", "staff", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newMockRepo())

			user, err := svc.CreateUser(context.Background(), tt.userName, tt.email, tt.role)
			if tt.wantErr {
				if !domain.IsValidation(err) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Role != tt.wantRole {
				t.Errorf("role = %q; want %q", user.Role, tt.wantRole)
			}
			if user.PasswordHash != "" {
				t.Error("created user should have no password")
			}
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := NewService(newMockRepo())

	if _, err := svc.CreateUser(context.Background(), "Alice", "alice@example.com", "staff"); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := svc.CreateUser(context.Background(), "Other Alice", "alice@example.com", "staff"); !domain.IsAlreadyExists(err) {
		t.Errorf("expected already exists, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	created, err := svc.CreateUser(context.Background(), "Alice", "alice@example.com", "staff")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	updated, err := svc.UpdateUser(context.Background(), created.ID, "Alice Admin", "alice@example.com", "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Alice Admin" || updated.Role != "admin" {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := svc.UpdateUser(context.Background(), 9999, "Ghost", "ghost@example.com", "staff"); !domain.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	svc := NewService(newMockRepo())

	created, err := svc.CreateUser(context.Background(), "Alice", "alice@example.com", "staff")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := svc.DeleteUser(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteUser(context.Background(), created.ID); !domain.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}
