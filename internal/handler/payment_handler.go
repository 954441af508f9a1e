package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/summercamp-api/internal/service"
	appErrors "github.com/noah-isme/summercamp-api/pkg/errors"
	"github.com/noah-isme/summercamp-api/pkg/response"
)

// PaymentHandler exposes payment-intent creation, payment recording, and
// enrollment history endpoints.
type PaymentHandler struct {
	service *service.EnrollmentService
}

// NewPaymentHandler constructs a payment handler.
func NewPaymentHandler(svc *service.EnrollmentService) *PaymentHandler {
	return &PaymentHandler{service: svc}
}

// CreateIntent godoc
// @Summary Create a payment intent for a charge amount
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.CreateIntentRequest true "Amount in major units"
// @Success 200 {object} service.IntentResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 502 {object} response.ErrorBody
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req service.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	intent, err := h.service.CreatePaymentIntent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, intent)
}

// Record godoc
// @Summary Record a confirmed payment and clear the selection
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.PaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Router /payment [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.RecordPayment(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Checkout godoc
// @Summary Reserve a seat and record the payment atomically
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.PaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /checkout [post]
func (h *PaymentHandler) Checkout(c *gin.Context) {
	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Checkout(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Enrollments godoc
// @Summary List the classes a student has paid for
// @Tags Payments
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Router /enroll/{email} [get]
func (h *PaymentHandler) Enrollments(c *gin.Context) {
	payments, err := h.service.Enrollments(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments)
}

// History godoc
// @Summary List a student's payments, newest first
// @Tags Payments
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Router /payment-history/{email} [get]
func (h *PaymentHandler) History(c *gin.Context) {
	payments, err := h.service.History(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments)
}

// ExportHistory godoc
// @Summary Download a student's payment history as CSV or PDF
// @Tags Payments
// @Produce application/pdf
// @Produce text/csv
// @Param email path string true "Student email"
// @Param format query string false "Export format (csv or pdf)"
// @Success 200 {file} file
// @Router /payment-history/{email}/export [get]
func (h *PaymentHandler) ExportHistory(c *gin.Context) {
	email := c.Param("email")
	format := c.Query("format")
	payload, contentType, err := h.service.ExportHistory(c.Request.Context(), email, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	ext := "pdf"
	if contentType == "text/csv" {
		ext = "csv"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=payment-history.%s", ext))
	c.Data(http.StatusOK, contentType, payload)
}
