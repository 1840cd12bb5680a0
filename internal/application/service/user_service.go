package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/enum"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
	"github.com/sangkips/fuelinvoice-api/pkg/utils"
)

// MinPasswordLength is the shortest password an admin may set
const MinPasswordLength = 6

// UserService handles admin user management
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns a paginated list of users
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// CreateUserInput represents the input for creating a user
type CreateUserInput struct {
	Name      string
	Password  string
	Role      enum.UserRole
	ExpiredAt *time.Time
}

// CreateUser creates a new user with a hashed password
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateUser(name, input.Password, true, input.Role); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:      name,
		Password:  hashed,
		Role:      input.Role,
		ExpiredAt: input.ExpiredAt,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserInput represents the input for updating a user. An empty
// password keeps the current one.
type UpdateUserInput struct {
	Name      string
	Password  string
	Role      enum.UserRole
	ExpiredAt *time.Time
}

// UpdateUser updates a user's name, role, expiry and optionally password
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if err := validateUser(name, input.Password, false, input.Role); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, name, user.ID); err != nil {
		return nil, err
	}

	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	user.Name = name
	user.Role = input.Role
	user.ExpiredAt = input.ExpiredAt

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft-deletes a user. Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, id, actorID uuid.UUID) error {
	if id == actorID {
		return apperror.NewBadRequestError("You cannot delete your own account")
	}
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

func (s *UserService) checkNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("User name already taken")
	}
	return nil
}

func validateUser(name, password string, passwordRequired bool, role enum.UserRole) error {
	var fieldErrors []apperror.FieldError
	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if password == "" && passwordRequired {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "password", Message: "Password is required"})
	} else if password != "" && len(password) < MinPasswordLength {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if !role.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "role", Message: "Role must be admin or user"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
