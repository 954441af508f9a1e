package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/summercamp-api/internal/models"
	appErrors "github.com/noah-isme/summercamp-api/pkg/errors"
)

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	RoleByEmail(ctx context.Context, email string) (models.UserRole, error)
	CreateIfAbsent(ctx context.Context, user *models.User) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	UpdateRole(ctx context.Context, id string, role models.UserRole) (int64, error)
}

// RegisterUserRequest is the first-sign-in upsert payload.
type RegisterUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     string  `json:"name" validate:"required"`
	PhotoURL *string `json:"photo_url"`
}

// RoleResult is the role lookup response shape.
type RoleResult struct {
	UserRole models.UserRole `json:"userRole"`
}

// UserService handles user registration and role management.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// Register creates the user on first sign-in. Existing users are left
// untouched and reported as not created.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*models.User, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	user := &models.User{
		Email:    strings.ToLower(req.Email),
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     models.RoleStudent,
	}
	created, err := s.repo.CreateIfAbsent(ctx, user)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to register user")
	}
	return user, created, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list users")
	}
	return users, nil
}

// ListByRole returns users holding the given role.
func (s *UserService) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	users, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list users by role")
	}
	return users, nil
}

// Role resolves the persisted role for an email. An unknown email yields an
// empty role rather than an error, matching the public lookup contract.
func (s *UserService) Role(ctx context.Context, email string) (*RoleResult, error) {
	role, err := s.repo.RoleByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &RoleResult{}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to resolve role")
	}
	return &RoleResult{UserRole: role}, nil
}

// Promote sets a user's role. Admin-only at the route layer.
func (s *UserService) Promote(ctx context.Context, id string, role models.UserRole) error {
	if role != models.RoleAdmin && role != models.RoleInstructor {
		return appErrors.Clone(appErrors.ErrValidation, "unsupported role")
	}

	affected, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update role")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return nil
}
