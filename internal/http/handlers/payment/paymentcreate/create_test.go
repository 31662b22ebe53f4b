package paymentcreate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/osint-gateway/internal/http/middlewarectx"
)

// Мок платежного сервиса
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) CreateOrder(ctx context.Context, userID int64) (json.RawMessage, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	gatewayResp := json.RawMessage(`{"status":true,"data":{"payment_url":"https://pay.example/x"}}`)

	tests := []struct {
		name           string
		body           string
		mockResp       json.RawMessage
		mockErr        error
		mockCalled     bool
		wantStatusCode int
		wantBody       string
		wantError      string
	}{
		{
			name:           "order created",
			body:           `{"user_id":42}`,
			mockResp:       gatewayResp,
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantBody:       string(gatewayResp),
		},
		{
			name:           "invalid json body",
			body:           "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "missing user_id",
			body:           `{}`,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field user_id is a required field",
		},
		{
			name:           "gateway failure",
			body:           `{"user_id":42}`,
			mockErr:        errors.New("connection refused"),
			mockCalled:     true,
			wantStatusCode: http.StatusBadGateway,
			wantError:      "payment gateway error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(ServiceMock)
			if tt.mockCalled {
				svcMock.On("CreateOrder", mock.Anything, int64(42)).
					Return(tt.mockResp, tt.mockErr).Once()
			}

			handler := New(newNoopLogger(), svcMock)

			req := httptest.NewRequest(http.MethodPost, "/create-payment", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantError != "" {
				var got map[string]any
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, tt.wantError, got["error"])
			}

			svcMock.AssertExpectations(t)
		})
	}
}

func TestCreateHandler_UserIDFromSession(t *testing.T) {
	svcMock := new(ServiceMock)
	svcMock.On("CreateOrder", mock.Anything, int64(7)).
		Return(json.RawMessage(`{"status":true}`), nil).Once()

	handler := New(newNoopLogger(), svcMock)

	// Тело пустое: идентификатор берется из контекста сессии
	req := httptest.NewRequest(http.MethodPost, "/create-payment", bytes.NewReader(nil))
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, int64(7)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svcMock.AssertExpectations(t)
}
