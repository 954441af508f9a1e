package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/summercamp-api/internal/models"
)

// UserRepository provides database access for user records.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, email, name, photo_url, role, created_at FROM users WHERE email = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, strings.ToLower(email)); err != nil {
		return nil, err
	}
	return &user, nil
}

// RoleByEmail returns only the persisted role for the given email.
func (r *UserRepository) RoleByEmail(ctx context.Context, email string) (models.UserRole, error) {
	const query = `SELECT role FROM users WHERE email = $1 LIMIT 1`
	var role models.UserRole
	if err := r.db.GetContext(ctx, &role, query, strings.ToLower(email)); err != nil {
		return "", err
	}
	return role, nil
}

// CreateIfAbsent inserts the user unless a row with the same email exists.
// Returns true when a new row was written.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.Email = strings.ToLower(user.Email)

	const query = `INSERT INTO users (id, email, name, photo_url, role, created_at)
        VALUES (:id, :email, :name, :photo_url, :role, :created_at)
        ON CONFLICT (email) DO NOTHING`
	res, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return false, fmt.Errorf("create user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create user result: %w", err)
	}
	return affected > 0, nil
}

// List returns all users ordered by creation time.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `SELECT id, email, name, photo_url, role, created_at FROM users ORDER BY created_at DESC`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListByRole returns users holding the given role.
func (r *UserRepository) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	const query = `SELECT id, email, name, photo_url, role, created_at FROM users WHERE role = $1 ORDER BY created_at DESC`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, role); err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return users, nil
}

// UpdateRole sets the role for a user by ID, returning the number of rows
// touched so callers can distinguish a missing user.
func (r *UserRepository) UpdateRole(ctx context.Context, id string, role models.UserRole) (int64, error) {
	const query = `UPDATE users SET role = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, role)
	if err != nil {
		return 0, fmt.Errorf("update user role: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update user role result: %w", err)
	}
	return affected, nil
}
