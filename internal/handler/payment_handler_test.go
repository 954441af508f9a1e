package handler

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/summercamp-api/internal/middleware"
	"github.com/noah-isme/summercamp-api/internal/models"
	"github.com/noah-isme/summercamp-api/internal/repository"
	"github.com/noah-isme/summercamp-api/internal/service"
)

type stubPaymentRepo struct {
	created []*models.Payment
}

func (s *stubPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	s.created = append(s.created, payment)
	return nil
}

func (s *stubPaymentRepo) ListByStudent(ctx context.Context, email string) ([]models.Payment, error) {
	return nil, nil
}

func (s *stubPaymentRepo) HistoryByStudent(ctx context.Context, email string) ([]models.Payment, error) {
	return nil, nil
}

type stubSelectionRepo struct{}

func (s *stubSelectionRepo) Create(ctx context.Context, selection *models.Selection) error {
	return nil
}

func (s *stubSelectionRepo) ListByStudent(ctx context.Context, email string) ([]models.Selection, error) {
	return nil, nil
}

func (s *stubSelectionRepo) FindByClassID(ctx context.Context, classID string) (*models.Selection, error) {
	return nil, sql.ErrNoRows
}

func (s *stubSelectionRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	return 1, nil
}

func (s *stubSelectionRepo) DeleteByClassAndStudent(ctx context.Context, classID, email string) (int64, error) {
	return 1, nil
}

type stubCheckoutRepo struct{}

func (s *stubCheckoutRepo) Checkout(ctx context.Context, payment *models.Payment) (*repository.CheckoutResult, error) {
	return &repository.CheckoutResult{Payment: payment, SelectionsRemoved: 1}, nil
}

type stubClassReader struct{}

func (s *stubClassReader) FindByID(ctx context.Context, id string) (*models.Class, error) {
	return nil, sql.ErrNoRows
}

type stubGateway struct {
	lastAmount int64
	secret     string
}

func (s *stubGateway) CreateIntent(ctx context.Context, amountMinor int64) (string, error) {
	s.lastAmount = amountMinor
	return s.secret, nil
}

func newPaymentHandler(gw *stubGateway) *PaymentHandler {
	svc := service.NewEnrollmentService(&stubPaymentRepo{}, &stubSelectionRepo{}, &stubCheckoutRepo{}, &stubClassReader{}, gw, nil, nil, nil)
	return NewPaymentHandler(svc)
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path, body string, claims *models.JWTClaims) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	handler(c)
	return w
}

func TestCreateIntentHandlerForwardsMinorUnits(t *testing.T) {
	gw := &stubGateway{secret: "pi_secret"}
	handler := newPaymentHandler(gw)

	w := postJSON(t, handler.CreateIntent, "/create-payment-intent", `{"price": 25.5}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2550), gw.lastAmount)
	assert.Contains(t, w.Body.String(), "pi_secret")
}

func TestCreateIntentHandlerRejectsZeroPrice(t *testing.T) {
	gw := &stubGateway{secret: "pi_secret"}
	handler := newPaymentHandler(gw)

	w := postJSON(t, handler.CreateIntent, "/create-payment-intent", `{"price": 0}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_AMOUNT")
	assert.Zero(t, gw.lastAmount)
}

func TestCreateIntentHandlerRejectsMalformedBody(t *testing.T) {
	handler := newPaymentHandler(&stubGateway{})

	w := postJSON(t, handler.CreateIntent, "/create-payment-intent", `{"price":`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordHandlerRequiresClaims(t *testing.T) {
	handler := newPaymentHandler(&stubGateway{})

	w := postJSON(t, handler.Record, "/payment", `{"class_id":"c1","amount":40,"transaction_id":"tx_1"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecordHandlerCreatesPayment(t *testing.T) {
	handler := newPaymentHandler(&stubGateway{})
	claims := &models.JWTClaims{Email: "kid@example.com", Name: "Kid"}

	w := postJSON(t, handler.Record, "/payment", `{"class_id":"c1","amount":40,"transaction_id":"tx_1"}`, claims)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "tx_1")
}

func TestCheckoutHandlerCreatesEnrollment(t *testing.T) {
	handler := newPaymentHandler(&stubGateway{})
	claims := &models.JWTClaims{Email: "kid@example.com", Name: "Kid"}

	w := postJSON(t, handler.Checkout, "/checkout", `{"class_id":"c1","amount":40,"transaction_id":"tx_1"}`, claims)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "selections_removed")
}
