package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/summercamp-api/internal/service"
	appErrors "github.com/noah-isme/summercamp-api/pkg/errors"
	"github.com/noah-isme/summercamp-api/pkg/response"
)

// SelectionHandler exposes the student's pending class selections.
type SelectionHandler struct {
	service *service.EnrollmentService
}

// NewSelectionHandler constructs a selection handler.
func NewSelectionHandler(svc *service.EnrollmentService) *SelectionHandler {
	return &SelectionHandler{service: svc}
}

// Create godoc
// @Summary Select a class for later payment
// @Tags Selections
// @Accept json
// @Produce json
// @Param payload body service.SelectClassRequest true "Selection payload"
// @Success 201 {object} response.Envelope
// @Router /myClasses [post]
func (h *SelectionHandler) Create(c *gin.Context) {
	var req service.SelectClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	selection, err := h.service.SelectClass(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, selection)
}

// ListByStudent godoc
// @Summary List a student's pending selections
// @Tags Selections
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Router /myClasses/student/{email} [get]
func (h *SelectionHandler) ListByStudent(c *gin.Context) {
	selections, err := h.service.MySelections(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selections)
}

// GetByClass godoc
// @Summary Fetch the selection referencing a class
// @Tags Selections
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.ErrorBody
// @Router /myClasses/one/{id} [get]
func (h *SelectionHandler) GetByClass(c *gin.Context) {
	selection, err := h.service.SelectionByClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selection)
}

// Delete godoc
// @Summary Remove a pending selection
// @Tags Selections
// @Produce json
// @Param id path string true "Selection ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.ErrorBody
// @Router /myClasses/{id} [delete]
func (h *SelectionHandler) Delete(c *gin.Context) {
	if err := h.service.RemoveSelection(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true})
}
