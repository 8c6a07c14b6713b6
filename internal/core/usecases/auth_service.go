package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/core/ports"
)

// AuthService registers accounts and issues access tokens.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenIssuer
	cost   int
}

// NewAuthService creates a new AuthService. A zero cost selects bcrypt.DefaultCost.
func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, cost int) *AuthService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, tokens: tokens, cost: cost}
}

// Register creates an account. A taken login yields domain.ErrAlreadyExists.
func (s *AuthService) Register(ctx context.Context, login, password string, role domain.Role) (*domain.User, error) {
	if login == "" || password == "" {
		return nil, fmt.Errorf("%w: login and password are required", domain.ErrInvalidInput)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	_, err := s.users.GetByLogin(ctx, login)
	switch {
	case err == nil:
		return nil, fmt.Errorf("login %s: %w", login, domain.ErrAlreadyExists)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Login:        login,
		PasswordHash: string(hash),
		Role:         role,
		RegisteredAt: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and returns an access token and the
// account role. Unknown logins and wrong passwords both yield
// domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, domain.Role, error) {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", fmt.Errorf("bad credentials: %w", domain.ErrUnauthorized)
		}
		return "", "", fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", fmt.Errorf("bad credentials: %w", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", "", fmt.Errorf("issue token: %w", err)
	}
	return token, user.Role, nil
}
