package paymentwebhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/osint-gateway/internal/services/payment"
)

// Мок сервиса обработки webhook
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ProcessWebhook(ctx context.Context, payload payment.WebhookPayload) (bool, error) {
	args := m.Called(ctx, payload)
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestWebhookHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockActivated  bool
		mockErr        error
		mockCalled     bool
		wantStatusCode int
		wantMsg        string
	}{
		{
			name:           "successful payment",
			body:           `{"client_txn_id":"txn_42","status":"success","amount":29}`,
			mockActivated:  true,
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantMsg:        "Subscription activated",
		},
		{
			name:           "failed payment acknowledged",
			body:           `{"client_txn_id":"txn_42","status":"failure"}`,
			mockActivated:  false,
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantMsg:        "Payment not successful",
		},
		{
			name:           "invalid transaction id",
			body:           `{"client_txn_id":"txn_abc","status":"success"}`,
			mockErr:        payment.ErrInvalidTransaction,
			mockCalled:     true,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid json body",
			body:           "not a json",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "storage failure",
			body:           `{"client_txn_id":"txn_42","status":"success"}`,
			mockErr:        errors.New("connection refused"),
			mockCalled:     true,
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(ServiceMock)
			if tt.mockCalled {
				svcMock.On("ProcessWebhook", mock.Anything, mock.Anything).
					Return(tt.mockActivated, tt.mockErr).Once()
			}

			handler := New(newNoopLogger(), svcMock, "")

			req := httptest.NewRequest(http.MethodPost, "/payment-webhook", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			if tt.wantMsg != "" {
				var got map[string]string
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, tt.wantMsg, got["msg"])
			}

			svcMock.AssertExpectations(t)
		})
	}
}

func TestWebhookHandler_SignatureVerification(t *testing.T) {
	secret := "webhook_secret"
	body := []byte(`{"client_txn_id":"txn_42","status":"success","amount":29}`)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	validSig := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	tests := []struct {
		name           string
		signature      string
		wantStatusCode int
		wantProcessed  bool
	}{
		{
			name:           "valid signature",
			signature:      validSig,
			wantStatusCode: http.StatusOK,
			wantProcessed:  true,
		},
		{
			name:           "invalid signature",
			signature:      "bm90LXZhbGlk",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "missing signature",
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(ServiceMock)
			if tt.wantProcessed {
				svcMock.On("ProcessWebhook", mock.Anything, mock.Anything).
					Return(true, nil).Once()
			}

			handler := New(newNoopLogger(), svcMock, secret)

			req := httptest.NewRequest(http.MethodPost, "/payment-webhook", bytes.NewReader(body))
			if tt.signature != "" {
				req.Header.Set("X-Api-Signature", tt.signature)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if !tt.wantProcessed {
				svcMock.AssertNotCalled(t, "ProcessWebhook", mock.Anything, mock.Anything)
			}
			svcMock.AssertExpectations(t)
		})
	}
}
