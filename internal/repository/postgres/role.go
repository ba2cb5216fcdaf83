package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/model"
)

var _ model.RoleStore = (*RoleRepository)(nil)

type RoleRepository struct {
	db *Connection
}

func NewRoleRepository(db *Connection) *RoleRepository {
	return &RoleRepository{
		db: db,
	}
}

func (r *RoleRepository) HasRole(ctx context.Context, userID uuid.UUID, role model.Role) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2)`

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, userID, string(role)).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to check user role: %w", err)
	}
	return ok, nil
}
