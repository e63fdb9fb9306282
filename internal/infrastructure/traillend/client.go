// Package traillend is the HTTP client for the TrailLend campus lending API.
package traillend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/traillend-client/internal/config"
	"github.com/example/traillend-client/internal/domain/inventory"
	"github.com/example/traillend-client/internal/domain/reservation"
	"github.com/example/traillend-client/internal/logger"
)

type Client struct {
	hc    *http.Client
	base  string
	loc   *time.Location
	token string
}

func New(cfg config.Config) (*Client, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &Client{
		hc:   &http.Client{Timeout: cfg.HTTPTimeout},
		base: strings.TrimRight(cfg.BaseURL, "/"),
		loc:  loc,
	}, nil
}

// SetToken installs the bearer token used on authenticated endpoints.
func (c *Client) SetToken(token string) { c.token = token }
func (c *Client) Token() string         { return c.token }

// Login exchanges credentials for an access token (POST /token/).
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	status, res, err := c.do(ctx, http.MethodPost, "/token/", body, false)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if status >= 400 {
		return "", fmt.Errorf("login failed: %s (status=%d)", serverMessage(res), status)
	}
	var parsed struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(res, &parsed); err != nil || parsed.Access == "" {
		return "", fmt.Errorf("login: no access token in response")
	}
	return parsed.Access, nil
}

// Registration is the sign-up body for POST /users/register/.
type Registration struct {
	Name      string `json:"name"`
	StudentID string `json:"student_id"`
	Course    string `json:"course"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Password  string `json:"password"`
}

func (c *Client) Register(ctx context.Context, reg Registration) error {
	status, res, err := c.do(ctx, http.MethodPost, "/users/register/", reg, false)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if status != http.StatusCreated {
		return fmt.Errorf("register failed: %s (status=%d)", serverMessage(res), status)
	}
	return nil
}

// Items lists the lendable inventory (GET /items/).
func (c *Client) Items(ctx context.Context) ([]inventory.Item, error) {
	status, res, err := c.do(ctx, http.MethodGet, "/items/", nil, false)
	if err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}
	if status >= 400 {
		return nil, fmt.Errorf("fetch items failed: %s (status=%d)", serverMessage(res), status)
	}
	var items []inventory.Item
	if err := json.Unmarshal(res, &items); err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}
	return items, nil
}

// Submit posts a completed reservation (POST /reserve/) and interprets the
// echoed record into a receipt. The token presence check happens here, before
// any network I/O; there is no retry and no cancellation once the request is
// on the wire.
func (c *Client) Submit(ctx context.Context, item inventory.ItemRef, sub reservation.Submission) (reservation.Receipt, error) {
	if c.token == "" {
		return reservation.Receipt{}, reservation.ErrAuthenticationRequired
	}

	status, res, err := c.do(ctx, http.MethodPost, "/reserve/", sub, true)
	if err != nil {
		return reservation.Receipt{}, &reservation.SubmissionError{Err: err}
	}
	if status >= 400 {
		return reservation.Receipt{}, &reservation.SubmissionError{Status: status, Message: serverMessage(res)}
	}

	var parsed struct {
		Reservation *struct {
			TransactionID json.RawMessage `json:"transaction_id"`
			StartDatetime string          `json:"start_datetime"`
			EndDatetime   string          `json:"end_datetime"`
			Fee           string          `json:"fee"`
		} `json:"reservation"`
	}
	if err := json.Unmarshal(res, &parsed); err != nil {
		return reservation.Receipt{}, fmt.Errorf("%w: %v", reservation.ErrMalformedResponse, err)
	}
	if parsed.Reservation == nil {
		return reservation.Receipt{}, fmt.Errorf("%w: no reservation payload", reservation.ErrMalformedResponse)
	}
	txID := rawString(parsed.Reservation.TransactionID)
	if txID == "" {
		return reservation.Receipt{}, fmt.Errorf("%w: no transaction_id", reservation.ErrMalformedResponse)
	}

	// Echoed datetimes feed display only; an unparseable echo yields a zero
	// window, which renders as the invalid-date marker instead of failing
	// the whole submission.
	var window reservation.Window
	if start, err := reservation.ParseInstant(parsed.Reservation.StartDatetime, c.loc); err == nil {
		if end, err := reservation.ParseInstant(parsed.Reservation.EndDatetime, c.loc); err == nil {
			window = reservation.Window{Start: start, End: end}
		}
	}

	return reservation.Receipt{
		TransactionID: txID,
		Item:          item,
		Window:        window,
		Fee:           parsed.Reservation.Fee,
	}, nil
}

// ReservationRecord is one row of a user's reservation history.
type ReservationRecord struct {
	ID            int64  `json:"id"`
	ItemName      string `json:"item_name"`
	StartDatetime string `json:"start_datetime"`
	EndDatetime   string `json:"end_datetime"`
	Status        string `json:"status"`
	Fee           string `json:"fee"`
}

func (c *Client) ReservationsForUser(ctx context.Context, userID int64) ([]ReservationRecord, error) {
	path := fmt.Sprintf("/reservations/user/%d/", userID)
	status, res, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, fmt.Errorf("fetch reservations: %w", err)
	}
	if status >= 400 {
		return nil, fmt.Errorf("fetch reservations failed: %s (status=%d)", serverMessage(res), status)
	}
	var records []ReservationRecord
	if err := json.Unmarshal(res, &records); err != nil {
		return nil, fmt.Errorf("fetch reservations: %w", err)
	}
	return records, nil
}

func (c *Client) Cancel(ctx context.Context, reservationID int64) error {
	path := fmt.Sprintf("/reservations/%d/cancel/", reservationID)
	status, res, err := c.do(ctx, http.MethodPost, path, nil, true)
	if err != nil {
		return fmt.Errorf("cancel reservation: %w", err)
	}
	if status >= 400 {
		return fmt.Errorf("cancel reservation failed: %s (status=%d)", serverMessage(res), status)
	}
	return nil
}

// Notification is one entry from GET /notifications/.
type Notification struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	if c.token == "" {
		return nil, reservation.ErrAuthenticationRequired
	}
	status, res, err := c.do(ctx, http.MethodGet, "/notifications/", nil, true)
	if err != nil {
		return nil, fmt.Errorf("fetch notifications: %w", err)
	}
	if status >= 400 {
		return nil, fmt.Errorf("fetch notifications failed: %s (status=%d)", serverMessage(res), status)
	}
	var notes []Notification
	if err := json.Unmarshal(res, &notes); err != nil {
		return nil, fmt.Errorf("fetch notifications: %w", err)
	}
	return notes, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, authed bool) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	logger.Debug("api request", "method", method, "path", path)
	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	logger.Debug("api response", "path", path, "status", res.StatusCode)
	return res.StatusCode, b, nil
}

// serverMessage pulls the human-readable message field out of an error body,
// trying the field names the backend actually uses.
func serverMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	_ = json.Unmarshal(body, &parsed)
	if parsed.Message != "" {
		return parsed.Message
	}
	if parsed.Detail != "" {
		return parsed.Detail
	}
	return "unexpected server response"
}

// rawString normalizes a JSON value that may arrive as a string or a number.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}
