package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/summercamp-api/internal/models"
	"github.com/noah-isme/summercamp-api/internal/service"
	appErrors "github.com/noah-isme/summercamp-api/pkg/errors"
	"github.com/noah-isme/summercamp-api/pkg/response"
)

// UserHandler exposes registration and role management endpoints.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler constructs a user handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// Register godoc
// @Summary Upsert a user on first sign-in
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body service.RegisterUserRequest true "User payload"
// @Success 200 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	user, created, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !created {
		// Existing account: nothing to report, matching the sign-in flow.
		response.JSON(c, http.StatusOK, gin.H{})
		return
	}
	response.Created(c, user)
}

// List godoc
// @Summary List all users
// @Tags Users
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// ListByRole godoc
// @Summary List users holding a role
// @Tags Users
// @Produce json
// @Param role path string true "Role"
// @Success 200 {object} response.Envelope
// @Router /users/role/{role} [get]
func (h *UserHandler) ListByRole(c *gin.Context) {
	users, err := h.service.ListByRole(c.Request.Context(), models.UserRole(c.Param("role")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// Role godoc
// @Summary Resolve the persisted role for an email
// @Tags Users
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} service.RoleResult
// @Router /user/role/{email} [get]
func (h *UserHandler) Role(c *gin.Context) {
	result, err := h.service.Role(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PromoteAdmin godoc
// @Summary Grant the admin role
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/admin/{id} [patch]
func (h *UserHandler) PromoteAdmin(c *gin.Context) {
	h.promote(c, models.RoleAdmin)
}

// PromoteInstructor godoc
// @Summary Grant the instructor role
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/instructor/{id} [patch]
func (h *UserHandler) PromoteInstructor(c *gin.Context) {
	h.promote(c, models.RoleInstructor)
}

func (h *UserHandler) promote(c *gin.Context, role models.UserRole) {
	if err := h.service.Promote(c.Request.Context(), c.Param("id"), role); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": true})
}
