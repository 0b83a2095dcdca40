package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// UnknownErrorMessage is reported when a failed response carries no body.
const UnknownErrorMessage = "Unknown error"

// ServerError represents a non-2xx reply from the remote service.
type ServerError struct {
	Status  int
	Message string
}

func (e ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

// NetworkError wraps a transport level failure.
type NetworkError struct {
	Err error
}

func (e NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e NetworkError) Unwrap() error {
	return e.Err
}

// TokenSource yields the bearer token attached to outgoing requests.
type TokenSource interface {
	Token() string
}

// Client exposes operations of the remote dry-cleaning service.
type Client interface {
	Register(ctx context.Context, reg model.Registration) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context) (*model.Profile, error)
	UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (*model.Profile, error)
	Promotions(ctx context.Context) ([]model.Promotion, error)
	CreateOrder(ctx context.Context, form OrderForm) (*model.Order, error)
	Orders(ctx context.Context) ([]model.OrderSummary, error)
	SearchOrders(ctx context.Context, query string, page, size int) (*model.Page[model.OrderSummary], error)
	OrderDetails(ctx context.Context, id string) (*model.Order, error)
	LogEvent(ctx context.Context, event model.AnalyticsEvent) error
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

// NewHTTPClient creates remote API client. Zero timeout falls back to 10 seconds.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("api url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: parsed,
		tokens:  tokens,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, route string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, route)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// do executes request and returns body of a 2xx reply.
func (c *HTTPClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := string(bytes.TrimSpace(body))
		if message == "" {
			message = UnknownErrorMessage
		}
		c.logger.Error("api request failed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", resp.StatusCode),
			slog.String("body", message),
		)
		return nil, ServerError{Status: resp.StatusCode, Message: message}
	}

	return body, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, route string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, route, query, nil, "")
	if err != nil {
		return err
	}
	body, err := c.do(req)
	if err != nil {
		return err
	}
	return decode(route, body, out)
}

func (c *HTTPClient) sendJSON(ctx context.Context, method, route string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, method, route, nil, bytes.NewReader(payload), "application/json")
	if err != nil {
		return err
	}
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(route, body, out)
}

func decode(route string, body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%s: %w", route, domainErrors.ErrEmptyResponse)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", route, err)
	}
	return nil
}

// Register creates a customer account and returns the issued token.
func (c *HTTPClient) Register(ctx context.Context, reg model.Registration) (string, error) {
	var resp authResponse
	in := registerRequest{Email: reg.Email, Password: reg.Password, Name: reg.Name, Phone: reg.Phone}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/register", in, &resp); err != nil {
		return "", err
	}
	return resp.token()
}

// Login exchanges credentials for a token.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp authResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.token()
}

// Profile returns the signed-in customer.
func (c *HTTPClient) Profile(ctx context.Context) (*model.Profile, error) {
	var resp profileResponse
	if err := c.getJSON(ctx, "/api/user/me", nil, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// UpdateProfile changes name and phone of the signed-in customer.
func (c *HTTPClient) UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (*model.Profile, error) {
	var resp profileResponse
	if err := c.sendJSON(ctx, http.MethodPut, "/api/user/me", profileUpdateRequest{Name: upd.Name, Phone: upd.Phone}, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// Promotions fetches the full promotion list.
func (c *HTTPClient) Promotions(ctx context.Context) ([]model.Promotion, error) {
	var resp []promotionResponse
	if err := c.getJSON(ctx, "/api/promotions", nil, &resp); err != nil {
		return nil, err
	}
	promos := make([]model.Promotion, 0, len(resp))
	for _, p := range resp {
		promos = append(promos, p.toModel())
	}
	return promos, nil
}

// Orders lists order summaries of the signed-in customer.
func (c *HTTPClient) Orders(ctx context.Context) ([]model.OrderSummary, error) {
	var resp []orderSummaryResponse
	if err := c.getJSON(ctx, "/api/orders", nil, &resp); err != nil {
		return nil, err
	}
	orders := make([]model.OrderSummary, 0, len(resp))
	for _, o := range resp {
		orders = append(orders, o.toModel())
	}
	return orders, nil
}

// SearchOrders runs a paginated server-side search.
func (c *HTTPClient) SearchOrders(ctx context.Context, query string, page, size int) (*model.Page[model.OrderSummary], error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("page", fmt.Sprint(page))
	params.Set("size", fmt.Sprint(size))

	var resp pageResponse[orderSummaryResponse]
	if err := c.getJSON(ctx, "/api/orders/search", params, &resp); err != nil {
		return nil, err
	}

	result := &model.Page[model.OrderSummary]{
		Content:       make([]model.OrderSummary, 0, len(resp.Content)),
		TotalPages:    resp.TotalPages,
		TotalElements: resp.TotalElements,
		Number:        resp.Number,
		Size:          resp.Size,
	}
	for _, o := range resp.Content {
		result.Content = append(result.Content, o.toModel())
	}
	return result, nil
}

// OrderDetails fetches a single order.
func (c *HTTPClient) OrderDetails(ctx context.Context, id string) (*model.Order, error) {
	var resp orderDetailsResponse
	if err := c.getJSON(ctx, "/api/orders/"+id, nil, &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("order %s: %w", id, domainErrors.ErrEmptyResponse)
	}
	return resp.toModel(), nil
}

// LogEvent posts a usage event. The response body is ignored.
func (c *HTTPClient) LogEvent(ctx context.Context, event model.AnalyticsEvent) error {
	in := analyticsEventRequest{UserID: event.UserID, EventType: event.Type}
	if event.Details != "" {
		in.Details = &event.Details
	}
	return c.sendJSON(ctx, http.MethodPost, "/api/analytics/events", in, nil)
}

