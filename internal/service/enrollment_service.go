package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/summercamp-api/internal/models"
	"github.com/noah-isme/summercamp-api/internal/repository"
	appErrors "github.com/noah-isme/summercamp-api/pkg/errors"
	"github.com/noah-isme/summercamp-api/pkg/export"
)

type paymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	ListByStudent(ctx context.Context, email string) ([]models.Payment, error)
	HistoryByStudent(ctx context.Context, email string) ([]models.Payment, error)
}

type selectionRepository interface {
	Create(ctx context.Context, selection *models.Selection) error
	ListByStudent(ctx context.Context, email string) ([]models.Selection, error)
	FindByClassID(ctx context.Context, classID string) (*models.Selection, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	DeleteByClassAndStudent(ctx context.Context, classID, email string) (int64, error)
}

type checkoutRepository interface {
	Checkout(ctx context.Context, payment *models.Payment) (*repository.CheckoutResult, error)
}

type classReader interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

type paymentGateway interface {
	CreateIntent(ctx context.Context, amountMinor int64) (string, error)
}

// CreateIntentRequest carries the charge amount in major units.
type CreateIntentRequest struct {
	Price float64 `json:"price"`
}

// IntentResponse returns the processor's client secret.
type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// SelectClassRequest records a student's pending choice of a class.
type SelectClassRequest struct {
	ClassID string `json:"class_id" validate:"required"`
}

// PaymentRequest is the payment record submitted after the external charge
// is confirmed.
type PaymentRequest struct {
	ClassID       string  `json:"class_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	TransactionID string  `json:"transaction_id" validate:"required"`
}

// RecordPaymentResult reports both effects of recording a payment.
type RecordPaymentResult struct {
	Payment           *models.Payment `json:"payment"`
	SelectionsRemoved int64           `json:"selections_removed"`
}

// EnrollmentService coordinates the transition from a pending selection to a
// paid enrollment.
type EnrollmentService struct {
	payments   paymentRepository
	selections selectionRepository
	checkout   checkoutRepository
	classes    classReader
	gateway    paymentGateway
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewEnrollmentService constructs the coordinator.
func NewEnrollmentService(payments paymentRepository, selections selectionRepository, checkout checkoutRepository, classes classReader, gw paymentGateway, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		payments:   payments,
		selections: selections,
		checkout:   checkout,
		classes:    classes,
		gateway:    gw,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
	}
}

// CreatePaymentIntent forwards the amount to the payment processor in
// minor units and returns the client secret.
func (s *EnrollmentService) CreatePaymentIntent(ctx context.Context, req CreateIntentRequest) (*IntentResponse, error) {
	if req.Price <= 0 || math.IsNaN(req.Price) || math.IsInf(req.Price, 0) {
		return nil, appErrors.Clone(appErrors.ErrInvalidAmount, "price must be a positive number")
	}

	amountMinor := int64(math.Round(req.Price * 100))
	secret, err := s.gateway.CreateIntent(ctx, amountMinor)
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrGateway.Code, appErrors.ErrGateway.Status, "payment gateway call failed")
	}
	return &IntentResponse{ClientSecret: secret}, nil
}

// SelectClass creates a selection with a snapshot of the chosen class.
func (s *EnrollmentService) SelectClass(ctx context.Context, req SelectClassRequest, student *models.JWTClaims) (*models.Selection, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload")
	}
	if student == nil {
		return nil, appErrors.ErrUnauthorized
	}

	class, err := s.classes.FindByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load class")
	}

	selection := &models.Selection{
		StudentEmail:   student.Email,
		ClassID:        class.ID,
		ClassName:      class.Name,
		ClassImageURL:  class.ImageURL,
		InstructorName: class.InstructorName,
		Price:          class.Price,
	}
	if err := s.selections.Create(ctx, selection); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create selection")
	}
	return selection, nil
}

// MySelections lists the student's pending selections.
func (s *EnrollmentService) MySelections(ctx context.Context, email string) ([]models.Selection, error) {
	selections, err := s.selections.ListByStudent(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list selections")
	}
	return selections, nil
}

// SelectionByClass fetches the selection referencing a class.
func (s *EnrollmentService) SelectionByClass(ctx context.Context, classID string) (*models.Selection, error) {
	selection, err := s.selections.FindByClassID(ctx, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "selection not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load selection")
	}
	return selection, nil
}

// RemoveSelection deletes a selection by ID.
func (s *EnrollmentService) RemoveSelection(ctx context.Context, id string) error {
	affected, err := s.selections.DeleteByID(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to remove selection")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "selection not found")
	}
	return nil
}

// RecordPayment appends the payment record and removes the matching
// selection. The two effects are issued in order; a selection that was
// already consumed yields a zero removal count, which is tolerated because
// the payment record is the authoritative success signal.
func (s *EnrollmentService) RecordPayment(ctx context.Context, req PaymentRequest, student *models.JWTClaims) (*RecordPaymentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	if student == nil {
		return nil, appErrors.ErrUnauthorized
	}

	payment := &models.Payment{
		StudentEmail:  student.Email,
		ClassID:       req.ClassID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
	}
	if class, err := s.classes.FindByID(ctx, req.ClassID); err == nil {
		payment.ClassName = class.Name
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to record payment")
	}
	s.metrics.RecordPayment()

	removed, err := s.selections.DeleteByClassAndStudent(ctx, req.ClassID, student.Email)
	if err != nil {
		// Partial completion: the payment is recorded but the selection
		// remains. Surfaced, never silently retried.
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "payment recorded but selection removal failed")
	}

	return &RecordPaymentResult{Payment: payment, SelectionsRemoved: removed}, nil
}

// Checkout performs seat reservation, payment insertion, and selection
// removal as one transaction, so a paid enrollment always corresponds to
// exactly one consumed seat and one payment record.
func (s *EnrollmentService) Checkout(ctx context.Context, req PaymentRequest, student *models.JWTClaims) (*repository.CheckoutResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	if student == nil {
		return nil, appErrors.ErrUnauthorized
	}

	payment := &models.Payment{
		StudentEmail:  student.Email,
		ClassID:       req.ClassID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
	}
	result, err := s.checkout.Checkout(ctx, payment)
	if err == nil {
		s.metrics.RecordPayment()
		return result, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "checkout failed")
	}

	if _, findErr := s.classes.FindByID(ctx, req.ClassID); findErr != nil {
		if errors.Is(findErr, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(findErr, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load class")
	}
	return nil, appErrors.Clone(appErrors.ErrCapacityExhausted, "no seats remaining for this class")
}

// Enrollments returns the classes the student has paid for.
func (s *EnrollmentService) Enrollments(ctx context.Context, email string) ([]models.Payment, error) {
	payments, err := s.payments.ListByStudent(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list enrollments")
	}
	return payments, nil
}

// History returns the student's payments newest first.
func (s *EnrollmentService) History(ctx context.Context, email string) ([]models.Payment, error) {
	payments, err := s.payments.HistoryByStudent(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load payment history")
	}
	return payments, nil
}

// ExportHistory renders the payment history as a downloadable table.
func (s *EnrollmentService) ExportHistory(ctx context.Context, email, format string) ([]byte, string, error) {
	payments, err := s.History(ctx, email)
	if err != nil {
		return nil, "", err
	}

	dataset := export.Dataset{
		Headers: []string{"Class", "Amount", "Transaction", "Paid At"},
	}
	for _, p := range payments {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Class":       p.ClassName,
			"Amount":      fmt.Sprintf("%.2f", p.Amount),
			"Transaction": p.TransactionID,
			"Paid At":     p.PaidAt.UTC().Format(time.RFC3339),
		})
	}

	switch format {
	case "csv":
		payload, err := export.NewCSVExporter().Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return payload, "text/csv", nil
	case "", "pdf":
		payload, err := export.NewPDFExporter().Render(dataset, "Payment History")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
