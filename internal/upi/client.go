// Package upi реализует клиент платежного шлюза UPI.
//
// Шлюз принимает form-encoded запрос на создание заказа и отвечает JSON;
// результат платежа приходит позже асинхронным callback-ом на webhook.
package upi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SubscriptionAmount — фиксированная цена месячной подписки.
const SubscriptionAmount = 29

// TxnPrefix — префикс идентификатора транзакции, по которому webhook
// восстанавливает user_id.
const TxnPrefix = "txn_"

// Client клиент для работы со шлюзом UPI.
type Client struct {
	apiKey      string
	redirectURL string
	apiURL      string
	httpClient  *http.Client
}

// NewClient создаёт новый клиент шлюза UPI.
func NewClient(apiKey, apiURL, redirectURL string) *Client {
	return &Client{
		apiKey:      apiKey,
		apiURL:      strings.TrimRight(apiURL, "/"),
		redirectURL: redirectURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ClientTxnID возвращает детерминированный идентификатор транзакции
// для заданного пользователя.
func ClientTxnID(userID int64) string {
	return TxnPrefix + strconv.FormatInt(userID, 10)
}

// CreateOrder отправляет запрос на создание заказа на фиксированную сумму
// подписки и возвращает сырой JSON-ответ шлюза без изменений.
//
// Тело ответа возвращается и при неуспешном HTTP-статусе: шлюз сообщает
// об ошибках в JSON, который отдается клиенту как есть.
func (c *Client) CreateOrder(ctx context.Context, userID int64) (json.RawMessage, error) {
	const op = "upi.CreateOrder"

	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("client_txn_id", ClientTxnID(userID))
	form.Set("amount", strconv.Itoa(SubscriptionAmount))
	form.Set("p_info", "OSINT Monthly Subscription")
	form.Set("customer_name", fmt.Sprintf("user_%d", userID))
	form.Set("customer_email", "noemail@example.com")
	form.Set("customer_mobile", "9999999999")
	form.Set("redirect_url", c.redirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/create_order", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return json.RawMessage(body), nil
}
