package usecases_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/core/usecases"
)

type mockUserRepo struct {
	users map[string]domain.User
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	u.ID = "u-" + u.Login
	m.users[u.Login] = *u
	return nil
}

func (m *mockUserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	u, ok := m.users[login]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

type mockIssuer struct{}

func (mockIssuer) Issue(u *domain.User) (string, error) { return "token-for-" + u.ID, nil }

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := &mockUserRepo{users: map[string]domain.User{}}
	svc := usecases.NewAuthService(repo, mockIssuer{}, bcrypt.MinCost)

	user, err := svc.Register(context.Background(), "alice", "s3cret!", domain.RoleOwner)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.PasswordHash == "s3cret!" || user.PasswordHash == "" {
		t.Error("expected a password hash, not the password")
	}

	token, role, err := svc.Login(context.Background(), "alice", "s3cret!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "token-for-u-alice" || role != domain.RoleOwner {
		t.Errorf("unexpected token %q role %q", token, role)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := &mockUserRepo{users: map[string]domain.User{}}
	svc := usecases.NewAuthService(repo, mockIssuer{}, bcrypt.MinCost)

	if _, err := svc.Register(context.Background(), "alice", "pw", domain.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "other", domain.RoleUser); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthService_Register_BadRole(t *testing.T) {
	svc := usecases.NewAuthService(&mockUserRepo{users: map[string]domain.User{}}, mockIssuer{}, bcrypt.MinCost)
	if _, err := svc.Register(context.Background(), "alice", "pw", "ADMIN"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	repo := &mockUserRepo{users: map[string]domain.User{}}
	svc := usecases.NewAuthService(repo, mockIssuer{}, bcrypt.MinCost)
	_, _ = svc.Register(context.Background(), "alice", "right", domain.RoleUser)

	if _, _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("wrong password: expected ErrUnauthorized, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody", "right"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("unknown login: expected ErrUnauthorized, got %v", err)
	}
}
