package repositories

import (
	"context"
	"database/sql"
	"errors"

	"salon_reports_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// AuthRepository defines the interface for authentication-related database operations.
type AuthRepository interface {
	// FindUserByUsername returns the user with PasswordHash populated.
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, userID int64) (*models.User, error)
}

type authRepository struct {
	db Queryer
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sqlx.DB) AuthRepository {
	return &authRepository{db: db}
}

type userRow struct {
	models.User
	RoleName sql.NullString `db:"role_name"`
}

func (row userRow) toModel() *models.User {
	user := row.User
	if user.RoleID != nil && row.RoleName.Valid && row.RoleName.String != "" {
		user.Role = &models.Role{ID: *user.RoleID, Name: row.RoleName.String}
	}
	return &user
}

const userSelect = `
	SELECT u.id, u.username, u.password_hash, u.email, u.full_name, u.role_id, u.is_active,
	       u.created_at, u.updated_at, ro.name AS role_name
	FROM users u
	LEFT JOIN roles ro ON u.role_id = ro.id`

// FindUserByUsername retrieves a user by their username.
func (r *authRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.db, &row, userSelect+" WHERE u.username = $1", username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, dbError("finding user by username "+username, err)
	}
	return row.toModel(), nil
}

// FindUserByID retrieves a user by their ID. The password hash is cleared.
func (r *authRepository) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.db, &row, userSelect+" WHERE u.id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, dbError("finding user by id", err)
	}
	user := row.toModel()
	user.PasswordHash = ""
	return user, nil
}
