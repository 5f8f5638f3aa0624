package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/dto"
)

// APIError is a non-2xx response decoded from the server's error body
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the budget ledger HTTP API. The bearer token travels in
// the request context, never in client state, so one client can serve
// several sessions.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an API client for the given base URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type tokenKeyType struct{}

var tokenKey tokenKeyType

// WithToken returns a context carrying the session's bearer token
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody dto.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr != nil {
			errBody.Message = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Code: errBody.Code, Message: errBody.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Register creates an account
func (c *Client) Register(ctx context.Context, username, password string) (*dto.RegisterResponse, error) {
	var out dto.RegisterResponse
	err := c.do(ctx, http.MethodPost, "/users", dto.RegisterRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for an access token
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out dto.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth", dto.LoginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// CreateCategory creates a budget category
func (c *Client) CreateCategory(ctx context.Context, name, budget string) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	err := c.do(ctx, http.MethodPost, "/create/budget-category",
		dto.CreateCategoryRequest{Name: name, Budget: budget}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategoryBudget changes a category's budget ceiling
func (c *Client) UpdateCategoryBudget(ctx context.Context, category, budget string) (*dto.UpdateCategoryBudgetResponse, error) {
	var out dto.UpdateCategoryBudgetResponse
	err := c.do(ctx, http.MethodPost, "/update/budget-category",
		dto.UpdateCategoryBudgetRequest{Category: category, Budget: budget}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTransaction records a transaction and reports the category's state
func (c *Client) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*dto.CreateTransactionResponse, error) {
	var out dto.CreateTransactionResponse
	if err := c.do(ctx, http.MethodPost, "/create/transaction", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePayment creates a recurring payment
func (c *Client) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	var out dto.CreatePaymentResponse
	if err := c.do(ctx, http.MethodPost, "/create/recurring-payment", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits one field of a transaction or recurring payment. The path
// mirrors the record kind named in the body.
func (c *Client) Update(ctx context.Context, req dto.UpdateRequest) (*dto.UpdateResponse, error) {
	path := "/update/transaction"
	if req.Table == "recurringpayments" {
		path = "/update/recurring-payment"
	}
	var out dto.UpdateResponse
	if err := c.do(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes a category, re-pointing its transactions when a
// replacement is named
func (c *Client) DeleteCategory(ctx context.Context, category, newCategory string) error {
	return c.do(ctx, http.MethodPost, "/delete/categories",
		dto.DeleteCategoryRequest{Category: category, NewCategory: newCategory}, nil)
}

// DeleteTransaction removes a transaction by id
func (c *Client) DeleteTransaction(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodPost, "/delete/transactions", dto.DeleteRecordRequest{ID: id}, nil)
}

// DeletePayment removes a recurring payment by id
func (c *Client) DeletePayment(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodPost, "/delete/recurringpayments", dto.DeleteRecordRequest{ID: id}, nil)
}

// QueryCategories lists the user's categories
func (c *Client) QueryCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	var out struct {
		Rows []dto.CategoryResponse `json:"rows"`
	}
	if err := c.do(ctx, http.MethodGet, "/query/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Rows, nil
}

// QueryTransactions lists the user's transactions
func (c *Client) QueryTransactions(ctx context.Context) ([]dto.TransactionResponse, error) {
	var out struct {
		Rows []dto.TransactionResponse `json:"rows"`
	}
	if err := c.do(ctx, http.MethodGet, "/query/transactions", nil, &out); err != nil {
		return nil, err
	}
	return out.Rows, nil
}

// QueryPayments lists the user's recurring payments
func (c *Client) QueryPayments(ctx context.Context) ([]dto.PaymentResponse, error) {
	var out struct {
		Rows []dto.PaymentResponse `json:"rows"`
	}
	if err := c.do(ctx, http.MethodGet, "/query/recurringpayments", nil, &out); err != nil {
		return nil, err
	}
	return out.Rows, nil
}

// Overview fetches one calendar month's spending summary
func (c *Client) Overview(ctx context.Context, month, year int) (*dto.OverviewResponse, error) {
	var out dto.OverviewResponse
	path := fmt.Sprintf("/overview?month=%d&year=%d", month, year)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
