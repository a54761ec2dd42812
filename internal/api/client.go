// Package api реализует HTTP-клиент коллекции участников.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"member-roster-service/internal/model"
)

// StatusError описывает ответ сервера с не-2xx статусом.
// Message заполняется из тела `{"error": "..."}`, если сервер его прислал.
type StatusError struct {
	Status  int
	Message string
}

// Error реализует интерфейс error для StatusError.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("status %d", e.Status)
}

// Client — клиент REST API участников. Таймаут у клиента намеренно
// не выставляется: отмена возможна только через переданный контекст.
type Client struct {
	base string
	http *http.Client
}

// NewClient создаёт клиент для указанного базового адреса API.
func NewClient(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{},
	}
}

// List запрашивает полную коллекцию участников (включая пароли).
func (c *Client) List(ctx context.Context) ([]model.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/members", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get members: %w", err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return nil, statusError(resp)
	}

	var users []model.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	return users, nil
}

// Create отправляет нового участника. Любой 2xx считается успехом.
func (c *Client) Create(ctx context.Context, u model.User) error {
	return c.send(ctx, http.MethodPost, c.base+"/members", u)
}

// Update отправляет полный объединённый объект участника.
func (c *Client) Update(ctx context.Context, u model.User) error {
	return c.send(ctx, http.MethodPut, c.base+"/members/"+u.ID, u)
}

// Delete удаляет участника по идентификатору. На не-2xx возвращает
// *StatusError с сообщением сервера, если оно было в теле ответа.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.base+"/members/"+id, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return statusError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) send(ctx context.Context, method, url string, u model.User) error {
	body, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal member: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s member: %w", strings.ToLower(method), err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return statusError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// statusError вычитывает из тела ответа плоское поле error, если оно есть.
func statusError(resp *http.Response) *StatusError {
	se := &StatusError{Status: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		se.Message = body.Error
	}
	return se
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}
