package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/fuelinvoice-api/internal/application/service"
	"github.com/sangkips/fuelinvoice-api/internal/domain/enum"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/response"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
)

// UserHandler handles admin user management HTTP requests
type UserHandler struct {
	userService *service.UserService
	loc         *time.Location
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService, loc *time.Location) *UserHandler {
	return &UserHandler{userService: userService, loc: loc}
}

// List handles listing users with pagination
// @Summary List Users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(15)
// @Param search query string false "Search by name"
// @Success 200 {object} response.APIResponse
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	result, err := h.userService.ListUsers(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	users := make([]gin.H, len(result.Items))
	for i := range result.Items {
		users[i] = userResponse(&result.Items[i])
	}
	response.SuccessWithPagination(c, http.StatusOK, "Users retrieved successfully", pagination.NewPaginatedResult(users, result.Pagination))
}

// Get handles retrieving a single user
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved successfully", userResponse(user))
}

// Create handles creating a user
// @Summary Create User
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateUserRequest true "User data"
// @Success 201 {object} response.APIResponse
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req request.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	role, expiredAt, err := h.parseAccess(req.Role, req.ExpiredAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &service.CreateUserInput{
		Name:      req.Name,
		Password:  req.Password,
		Role:      role,
		ExpiredAt: expiredAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created successfully", userResponse(user))
}

// Update handles updating a user
func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	role, expiredAt, err := h.parseAccess(req.Role, req.ExpiredAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, &service.UpdateUserInput{
		Name:      req.Name,
		Password:  req.Password,
		Role:      role,
		ExpiredAt: expiredAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User updated successfully", userResponse(user))
}

// Delete handles deleting a user
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id, *actor); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User deleted successfully", nil)
}

func (h *UserHandler) parseAccess(roleName string, expiredAt *string) (enum.UserRole, *time.Time, error) {
	role, err := enum.ParseUserRole(roleName)
	if err != nil {
		return role, nil, apperror.NewValidationError([]apperror.FieldError{{Field: "role", Message: "Role must be admin or user"}})
	}

	p := newFieldParser(h.loc)
	var expiry *time.Time
	if expiredAt != nil {
		expiry = p.optionalDate("expired_at", *expiredAt)
	}
	return role, expiry, p.err()
}
