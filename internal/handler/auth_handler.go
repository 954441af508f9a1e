package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/summercamp-api/internal/models"
	"github.com/noah-isme/summercamp-api/internal/service"
	appErrors "github.com/noah-isme/summercamp-api/pkg/errors"
	"github.com/noah-isme/summercamp-api/pkg/response"
)

// AuthHandler exposes the token issuance endpoint.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// CreateToken godoc
// @Summary Exchange identity claims for an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.TokenRequest true "Identity claims"
// @Success 200 {object} models.TokenResponse
// @Router /jwt [post]
func (h *AuthHandler) CreateToken(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	token, err := h.service.IssueToken(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}
