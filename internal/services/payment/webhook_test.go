package payment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/osint-gateway/internal/models"
)

// Мок репозитория платежей
type RepositoryMock struct {
	mock.Mock
}

func (m *RepositoryMock) ExtendPaidUntil(ctx context.Context, userID int64, days int) error {
	args := m.Called(ctx, userID, days)
	return args.Error(0)
}

func (m *RepositoryMock) SavePayment(ctx context.Context, userID int64, clientTxnID, status string, amount int) (int, error) {
	args := m.Called(ctx, userID, clientTxnID, status, amount)
	return args.Int(0), args.Error(1)
}

func (m *RepositoryMock) ListPayments(ctx context.Context, userID int64) ([]*models.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

// Мок клиента платежного шлюза
type GatewayClientMock struct {
	mock.Mock
}

func (m *GatewayClientMock) CreateOrder(ctx context.Context, userID int64) (json.RawMessage, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestParseUserID(t *testing.T) {
	tests := []struct {
		name        string
		clientTxnID string
		wantID      int64
		wantErr     bool
	}{
		{
			name:        "valid transaction id",
			clientTxnID: "txn_42",
			wantID:      42,
		},
		{
			name:        "non-numeric suffix",
			clientTxnID: "txn_abc",
			wantErr:     true,
		},
		{
			name:        "missing prefix",
			clientTxnID: "42",
			wantErr:     true,
		},
		{
			name:        "empty suffix",
			clientTxnID: "txn_",
			wantErr:     true,
		},
		{
			name:        "empty string",
			clientTxnID: "",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseUserID(tt.clientTxnID)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTransaction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestService_ProcessWebhook(t *testing.T) {
	tests := []struct {
		name          string
		payload       WebhookPayload
		extendErr     error
		wantActivated bool
		wantErr       error
		wantExtend    bool
	}{
		{
			name:          "successful payment extends subscription",
			payload:       WebhookPayload{ClientTxnID: "txn_42", Status: "success", Amount: 29},
			wantActivated: true,
			wantExtend:    true,
		},
		{
			name:    "failed payment acknowledged without mutation",
			payload: WebhookPayload{ClientTxnID: "txn_42", Status: "failure"},
		},
		{
			name:    "invalid transaction id",
			payload: WebhookPayload{ClientTxnID: "txn_abc", Status: "success"},
			wantErr: ErrInvalidTransaction,
		},
		{
			name:       "storage failure propagates",
			payload:    WebhookPayload{ClientTxnID: "txn_42", Status: "success"},
			extendErr:  errors.New("connection refused"),
			wantExtend: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepositoryMock)
			if tt.wantExtend {
				repo.On("ExtendPaidUntil", mock.Anything, int64(42), SubscriptionDays).
					Return(tt.extendErr).Once()
			}
			if tt.wantActivated {
				repo.On("SavePayment", mock.Anything, int64(42), tt.payload.ClientTxnID,
					tt.payload.Status, tt.payload.Amount).Return(1, nil).Once()
			}

			svc := New(repo, new(GatewayClientMock), newNoopLogger())
			activated, err := svc.ProcessWebhook(context.Background(), tt.payload)

			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.extendErr != nil:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantActivated, activated)
			}

			// Без успешного платежа состояние не меняется
			if !tt.wantExtend {
				repo.AssertNotCalled(t, "ExtendPaidUntil", mock.Anything, mock.Anything, mock.Anything)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_ProcessWebhook_ReplayExtendsAgain(t *testing.T) {
	repo := new(RepositoryMock)
	repo.On("ExtendPaidUntil", mock.Anything, int64(7), SubscriptionDays).Return(nil).Twice()
	repo.On("SavePayment", mock.Anything, int64(7), "txn_7", "success", 29).Return(1, nil).Twice()

	svc := New(repo, new(GatewayClientMock), newNoopLogger())
	payload := WebhookPayload{ClientTxnID: "txn_7", Status: "success", Amount: 29}

	for i := 0; i < 2; i++ {
		activated, err := svc.ProcessWebhook(context.Background(), payload)
		require.NoError(t, err)
		assert.True(t, activated)
	}
	repo.AssertExpectations(t)
}

func TestService_ProcessWebhook_SavePaymentFailureDoesNotFail(t *testing.T) {
	repo := new(RepositoryMock)
	repo.On("ExtendPaidUntil", mock.Anything, int64(42), SubscriptionDays).Return(nil).Once()
	repo.On("SavePayment", mock.Anything, int64(42), "txn_42", "success", 29).
		Return(0, errors.New("connection refused")).Once()

	svc := New(repo, new(GatewayClientMock), newNoopLogger())
	activated, err := svc.ProcessWebhook(context.Background(),
		WebhookPayload{ClientTxnID: "txn_42", Status: "success", Amount: 29})

	require.NoError(t, err)
	assert.True(t, activated)
	repo.AssertExpectations(t)
}

func TestService_CreateOrder(t *testing.T) {
	gateway := new(GatewayClientMock)
	raw := json.RawMessage(`{"status":true,"data":{"order_id":1}}`)
	gateway.On("CreateOrder", mock.Anything, int64(42)).Return(raw, nil).Once()

	svc := New(new(RepositoryMock), gateway, newNoopLogger())
	resp, err := svc.CreateOrder(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, raw, resp)
	gateway.AssertExpectations(t)
}
