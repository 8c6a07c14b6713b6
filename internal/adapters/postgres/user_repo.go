package postgres

import (
	"context"

	"github.com/samirrijal/wayfarer/internal/core/domain"
)

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	db *DB
}

func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3)
		RETURNING id, registered_at
	`, u.Login, u.PasswordHash, string(u.Role)).Scan(&u.ID, &u.RegisteredAt)
	if err != nil {
		return conflict(err, "insert user")
	}
	return nil
}

func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	var u domain.User
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, login, password_hash, role, registered_at FROM users WHERE login = $1
	`, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.RegisteredAt)
	if err != nil {
		return nil, notFound(err, "user "+login)
	}
	return &u, nil
}
