package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/summercamp-api/internal/service"
	appErrors "github.com/noah-isme/summercamp-api/pkg/errors"
	"github.com/noah-isme/summercamp-api/pkg/response"
)

// ClassHandler exposes class lifecycle endpoints.
type ClassHandler struct {
	service *service.ClassService
}

// NewClassHandler constructs a class handler.
func NewClassHandler(svc *service.ClassService) *ClassHandler {
	return &ClassHandler{service: svc}
}

// Create godoc
// @Summary Propose a class (instructor only)
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body service.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Router /class [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req service.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	class, err := h.service.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// List godoc
// @Summary List all classes (admin review)
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /class [get]
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// ListApproved godoc
// @Summary List classes open for enrollment
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /class/approved [get]
func (h *ClassHandler) ListApproved(c *gin.Context) {
	classes, err := h.service.ListApproved(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// ListPopular godoc
// @Summary List approved classes ranked by enrollment
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /class/popular [get]
func (h *ClassHandler) ListPopular(c *gin.Context) {
	classes, err := h.service.ListPopular(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// ListByInstructor godoc
// @Summary List an instructor's classes
// @Tags Classes
// @Produce json
// @Param email path string true "Instructor email"
// @Success 200 {object} response.Envelope
// @Router /class/instructor/{email} [get]
func (h *ClassHandler) ListByInstructor(c *gin.Context) {
	classes, err := h.service.ListByInstructor(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Get godoc
// @Summary Get a class with its feedback
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /class/feedback/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	class, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Approve godoc
// @Summary Approve a class (admin only)
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /class/approve/{id} [put]
func (h *ClassHandler) Approve(c *gin.Context) {
	class, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Deny godoc
// @Summary Deny a class (admin only)
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /class/deny/{id} [put]
func (h *ClassHandler) Deny(c *gin.Context) {
	class, err := h.service.Deny(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Feedback godoc
// @Summary Attach feedback to a class (admin only)
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body service.FeedbackRequest true "Feedback payload"
// @Success 200 {object} response.Envelope
// @Router /class/feedback/{id} [patch]
func (h *ClassHandler) Feedback(c *gin.Context) {
	var req service.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.SetFeedback(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": true})
}

// ReserveSeat godoc
// @Summary Reserve one seat on a class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /class/seats/{id} [put]
func (h *ClassHandler) ReserveSeat(c *gin.Context) {
	class, err := h.service.ReserveSeat(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}
