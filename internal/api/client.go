package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"pagos/internal/models"
)

// ErrInvalidCredentials marks a 401 from the login endpoint.
var ErrInvalidCredentials = errors.New("invalid credentials")

// APIError surfaces non-2xx responses from the Pagos API. Message carries the
// server-provided message when one could be extracted from the body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("pagos api error: status=%d", e.StatusCode)
}

// SessionSource provides the Authorization header for outgoing requests.
// Unauthenticated sources return "".
type SessionSource interface {
	AuthHeader() string
}

// Client is an HTTP client for the Pagos payments API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	session    SessionSource
}

func NewClient(baseURL string, timeout time.Duration, session SessionSource) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		session:    session,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string `json:"token"`
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Login exchanges credentials for a session payload. A 401 maps to
// ErrInvalidCredentials; any other failure is generic.
func (c *Client) Login(ctx context.Context, email, password string) (models.Session, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return models.Session{}, ErrInvalidCredentials
		}
		return models.Session{}, err
	}
	var out loginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return models.Session{}, fmt.Errorf("decode login response: %w", err)
	}
	if out.Token == "" {
		return models.Session{}, errors.New("login response missing token")
	}
	return models.Session{
		Token:      out.Token,
		TokenType:  out.Type,
		UserID:     out.UserID,
		Email:      out.Email,
		Name:       out.Name,
		Role:       out.Role,
		AuthHeader: out.Type + " " + out.Token,
	}, nil
}

// Payment fetches one payment by id.
func (c *Client) Payment(ctx context.Context, id string) (*models.Payment, error) {
	return c.paymentRequest(ctx, http.MethodGet, "/api/payments/"+id, nil)
}

// MyPayments fetches the caller's payments.
func (c *Client) MyPayments(ctx context.Context) ([]models.Payment, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/payments/my-payments", nil)
	if err != nil {
		return nil, err
	}
	var out []models.Payment
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return out, nil
}

// Timeline fetches the event history of one payment.
func (c *Client) Timeline(ctx context.Context, id string) ([]models.PaymentEvent, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/payments/"+id+"/timeline", nil)
	if err != nil {
		return nil, err
	}
	var out []models.PaymentEvent
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode timeline: %w", err)
	}
	return out, nil
}

// MethodSelection is the payment-method assignment body: a card method with
// full card fields, or the wallet marker with none.
type MethodSelection struct {
	Method string           `json:"method"`
	Card   *models.CardData `json:"card,omitempty"`
}

// AssignPaymentMethod attaches the chosen method to the payment.
func (c *Client) AssignPaymentMethod(ctx context.Context, id string, sel MethodSelection) (*models.Payment, error) {
	return c.paymentRequest(ctx, http.MethodPut, "/api/payments/"+id+"/payment-method", sel)
}

// RetryBalance re-opens a REJECTED payment. Callers must check that the
// returned payment reports PENDING_PAYMENT.
func (c *Client) RetryBalance(ctx context.Context, id string) (*models.Payment, error) {
	return c.paymentRequest(ctx, http.MethodPost, "/api/payments/"+id+"/retry-balance", nil)
}

// Confirm finalizes the payment and returns it with its terminal status.
func (c *Client) Confirm(ctx context.Context, id string) (*models.Payment, error) {
	return c.paymentRequest(ctx, http.MethodPut, "/api/payments/"+id+"/confirm", nil)
}

type refundRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason,omitempty"`
}

// RequestRefund asks for a (partial) refund of an approved payment.
func (c *Client) RequestRefund(ctx context.Context, id string, amount float64, reason string) (*models.Payment, error) {
	return c.paymentRequest(ctx, http.MethodPost, "/api/payments/"+id+"/refunds", refundRequest{Amount: amount, Reason: reason})
}

func (c *Client) paymentRequest(ctx context.Context, method, path string, payload any) (*models.Payment, error) {
	body, err := c.doRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	var p models.Payment
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode payment: %w", err)
	}
	return &p, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return nil, err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		if h := c.session.AuthHeader(); h != "" {
			req.Header.Set("Authorization", h)
		}
	}
	if method != http.MethodGet {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: serverMessage(resp.Header.Get("Content-Type"), data)}
	}
	return data, nil
}

// serverMessage extracts a human-readable message from an error body: for
// JSON bodies the message/error field (raw text on parse failure), otherwise
// the body as text.
func serverMessage(contentType string, body []byte) string {
	text := strings.TrimSpace(string(body))
	if !strings.Contains(contentType, "application/json") {
		return text
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return text
	}
	if payload.Message != "" {
		return payload.Message
	}
	if payload.Error != "" {
		return payload.Error
	}
	return text
}
