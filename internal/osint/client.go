// Package osint реализует клиент upstream OSINT API.
//
// API принимает GET по пути /{type}?{query} и возвращает JSON,
// который передается вызывающей стороне без изменений.
package osint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client клиент для работы с upstream OSINT API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт новый клиент upstream OSINT API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup выполняет запрос /{lookupType}?{rawQuery} и возвращает сырое тело ответа.
//
// rawQuery — уже сформированная строка query upstream-запроса (например "x=1"),
// она подставляется в URL как есть.
func (c *Client) Lookup(ctx context.Context, lookupType, rawQuery string) (json.RawMessage, error) {
	const op = "osint.Lookup"

	apiURL := c.baseURL + "/" + lookupType
	if rawQuery != "" {
		apiURL += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

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
