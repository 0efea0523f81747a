// Package vend implements the HTTP client for the airtime platform API.
package vend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"airvend/pkg/api/vend"
	"airvend/pkg/clients"
	"airvend/pkg/logging"
	"airvend/pkg/models"
)

// APIError is a non-2xx response from the platform. Message is the
// server-supplied display text and may be empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// IsUnauthorized reports whether the error is a 401 from the platform.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

// Client represents an airtime platform API client
type Client struct {
	baseURL        string
	httpClient     *http.Client
	token          string
	logger         logging.Logger
	onUnauthorized func()
}

// Config represents the configuration for the platform client
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  logging.Logger

	// OnUnauthorized is invoked once per 401 response, before the error is
	// returned to the caller. The application wires it to session teardown;
	// the transport layer itself performs no navigation or state changes.
	OnUnauthorized func()
}

// NewClient creates a new platform API client
func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	httpClient := &http.Client{
		Timeout:   config.Timeout,
		Transport: clients.DefaultTransport(),
	}

	return &Client{
		baseURL:        config.BaseURL,
		httpClient:     httpClient,
		token:          config.Token,
		logger:         config.Logger,
		onUnauthorized: config.OnUnauthorized,
	}
}

// SetToken replaces the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register creates a new account. The response includes a session token and
// the fresh user record (wallet seeded with the signup bonus).
func (c *Client) Register(ctx context.Context, req vend.RegisterRequest) (*vend.AuthResponse, error) {
	var resp vend.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, req vend.LoginRequest) (*vend.AuthResponse, error) {
	var resp vend.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser fetches the authenticated user record.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/currentUser", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Wallet fetches a fresh wallet snapshot (balance, statistics, recent
// transactions). Snapshots are transient and never cached client-side.
func (c *Client) Wallet(ctx context.Context) (*vend.WalletSnapshot, error) {
	var resp vend.WalletResponse
	if err := c.do(ctx, http.MethodGet, "/api/purchase/wallet", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Transactions fetches one page of transaction history.
func (c *Client) Transactions(ctx context.Context, page, limit int) (*vend.TransactionsPage, error) {
	endpoint := "/api/purchase/transactions?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
	var resp vend.TransactionsResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// PurchaseAirtime buys airtime against the wallet balance. The server is
// authoritative on balance sufficiency; a rejection here must be surfaced even
// if client-side validation passed on stale data.
func (c *Client) PurchaseAirtime(ctx context.Context, req vend.PurchaseRequest) (*vend.MutationResult, error) {
	var resp vend.MutationResponse
	if err := c.do(ctx, http.MethodPost, "/api/purchase/airtime", req, &resp); err != nil {
		return nil, err
	}
	// A 200 with success=false is still a declined purchase.
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return &resp.Data, nil
}

// AddFunds credits the wallet and returns the server-confirmed balance.
func (c *Client) AddFunds(ctx context.Context, amount int64) (*vend.MutationResult, error) {
	var resp vend.MutationResponse
	if err := c.do(ctx, http.MethodPost, "/api/purchase/add-funds", vend.TopUpRequest{Amount: amount}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return &resp.Data, nil
}

// do performs a single request. No retries: one failed call is reported
// upward immediately.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call platform API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.logger != nil {
			c.logger.WithFields(logging.Fields{
				"endpoint": endpoint,
			}).Warn("Platform rejected credentials")
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &APIError{StatusCode: resp.StatusCode, Message: parseErrorMessage(respBody)}
	}

	if resp.StatusCode >= 400 {
		if c.logger != nil {
			c.logger.WithFields(logging.Fields{
				"status_code": resp.StatusCode,
				"endpoint":    endpoint,
			}).Error("Platform returned error")
		}
		return &APIError{StatusCode: resp.StatusCode, Message: parseErrorMessage(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func parseErrorMessage(body []byte) string {
	var errResp vend.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}
	return errResp.Message
}
