package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanAccount(row rowScanner) (model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName, &a.Phone,
		&a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT id, email, password_hash, first_name, last_name, phone, created_at, updated_at
			  FROM users WHERE email = $1`

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return a, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	query := `SELECT id, email, password_hash, first_name, last_name, phone, created_at, updated_at
			  FROM users WHERE id = $1`

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return a, nil
}

func (r *UserRepository) Create(ctx context.Context, a model.Account) (model.Account, error) {
	query := `INSERT INTO users (id, email, password_hash, first_name, last_name, phone, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, email, password_hash, first_name, last_name, phone, created_at, updated_at`

	saved, err := scanAccount(r.db.QueryRowContext(ctx, query,
		a.ID, a.Email, a.PasswordHash, a.FirstName, a.LastName, a.Phone, a.CreatedAt, a.UpdatedAt,
	))
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}
