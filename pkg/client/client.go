package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/anarchistempire/empire/pkg/domain"
)

// Actions understood by the service. The action is sent as the "action"
// query parameter of the single endpoint.
const (
	ActionLogin       = "login"
	ActionOrders      = "orders"
	ActionAdmins      = "admins"
	ActionPrivileges  = "privileges"
	ActionOrderStatus = "order_status"
	ActionPrivilege   = "privilege"
	ActionAdmin       = "admin"
	ActionOrder       = "order"
)

const (
	// AuthHeader carries the session credential on guarded actions.
	AuthHeader = "X-Auth-Token"
	// RequestIDHeader tags each request for log correlation.
	RequestIDHeader = "X-Request-ID"

	defaultTimeout = 30 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
)

// TokenSource supplies the current credential for guarded actions.
type TokenSource interface {
	Token() domain.Credential
}

// Client is the Anarchist Empire API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets where guarded actions read the credential from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a new API client for the endpoint at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is a parsed answer from the service. Non-2xx answers are still
// returned as a Response; callers check OK before trusting the payload.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the body into out.
func (r *Response) Decode(out any) error {
	return json.Unmarshal(r.Body, out)
}

// Err returns an HTTPError for a non-2xx response, nil otherwise.
func (r *Response) Err(action string) error {
	if r.OK() {
		return nil
	}
	var apiErr struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(r.Body, &apiErr) == nil && apiErr.Error != "" {
		return &HTTPError{Action: action, StatusCode: r.StatusCode, Message: apiErr.Error}
	}
	return &HTTPError{Action: action, StatusCode: r.StatusCode, Message: http.StatusText(r.StatusCode)}
}

// Request issues one call to the endpoint. When requiresAuth is set the
// current credential is attached, empty if there is none; the service decides
// whether to refuse. Only network and parse failures are returned as errors.
func (c *Client) Request(ctx context.Context, action, method string, body any, requiresAuth bool) (*Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	target, err := c.actionURL(action)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requiresAuth {
		req.Header.Set(AuthHeader, string(c.token()))
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("action", action).Str("request_id", reqID).Msg("request failed")
		return nil, &TransportError{Action: action, Op: "do request", Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &TransportError{Action: action, Op: "read body", Err: err}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		data = []byte("null")
	}

	c.log.Debug().
		Str("action", action).
		Str("method", method).
		Int("status", resp.StatusCode).
		Str("request_id", reqID).
		Dur("took", time.Since(start)).
		Msg("request")

	if !json.Valid(data) {
		return nil, &TransportError{Action: action, Op: "parse body", Err: ErrNotJSON}
	}
	return &Response{StatusCode: resp.StatusCode, Body: json.RawMessage(data)}, nil
}

func (c *Client) token() domain.Credential {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

func (c *Client) actionURL(action string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("action", action)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// call runs Request and turns a non-2xx answer into an HTTPError. A body that
// does not fit out is reported as a TransportError.
func (c *Client) call(ctx context.Context, action, method string, body any, requiresAuth bool, out any) error {
	resp, err := c.Request(ctx, action, method, body, requiresAuth)
	if err != nil {
		return err
	}
	if err := resp.Err(action); err != nil {
		return err
	}
	if out != nil {
		if err := resp.Decode(out); err != nil {
			return &TransportError{Action: action, Op: "decode response", Err: err}
		}
	}
	return nil
}

// LoginRequest is the payload of the login action.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges admin credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (domain.Credential, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.call(ctx, ActionLogin, http.MethodPost, LoginRequest{Username: username, Password: password}, false, &out); err != nil {
		return "", fmt.Errorf("client.Login: %w", err)
	}
	if strings.TrimSpace(out.Token) == "" {
		return "", fmt.Errorf("client.Login: %w", ErrMissingToken)
	}
	return domain.Credential(out.Token), nil
}

// ListOrders returns every order, newest first.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var out struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := c.call(ctx, ActionOrders, http.MethodGet, nil, true, &out); err != nil {
		return nil, fmt.Errorf("client.ListOrders: %w", err)
	}
	if out.Orders == nil {
		out.Orders = []domain.Order{}
	}
	return out.Orders, nil
}

// ListAdmins returns every admin account.
func (c *Client) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	var out struct {
		Admins []domain.Admin `json:"admins"`
	}
	if err := c.call(ctx, ActionAdmins, http.MethodGet, nil, true, &out); err != nil {
		return nil, fmt.Errorf("client.ListAdmins: %w", err)
	}
	if out.Admins == nil {
		out.Admins = []domain.Admin{}
	}
	return out.Admins, nil
}

// ListPrivileges returns the storefront catalogue. No credential is sent.
func (c *Client) ListPrivileges(ctx context.Context) ([]domain.Privilege, error) {
	var out struct {
		Privileges []domain.Privilege `json:"privileges"`
	}
	if err := c.call(ctx, ActionPrivileges, http.MethodGet, nil, false, &out); err != nil {
		return nil, fmt.Errorf("client.ListPrivileges: %w", err)
	}
	if out.Privileges == nil {
		out.Privileges = []domain.Privilege{}
	}
	return out.Privileges, nil
}

// OrderStatusRequest is the payload of the order_status action.
type OrderStatusRequest struct {
	OrderID int64              `json:"order_id"`
	Status  domain.OrderStatus `json:"status"`
}

// UpdateOrderStatus sets the status of one order.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	req := OrderStatusRequest{OrderID: orderID, Status: status}
	if err := c.call(ctx, ActionOrderStatus, http.MethodPut, req, true, nil); err != nil {
		return fmt.Errorf("client.UpdateOrderStatus: %w", err)
	}
	return nil
}

// CreatePrivilegeRequest is the payload of the privilege action.
type CreatePrivilegeRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Features    []string `json:"features"`
	Duration    string   `json:"duration"`
}

// CreatePrivilege adds a privilege to the catalogue and returns its id when
// the service reports one.
func (c *Client) CreatePrivilege(ctx context.Context, p CreatePrivilegeRequest) (int64, error) {
	if p.Features == nil {
		p.Features = []string{}
	}
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.call(ctx, ActionPrivilege, http.MethodPost, p, true, &out); err != nil {
		return 0, fmt.Errorf("client.CreatePrivilege: %w", err)
	}
	return out.ID, nil
}

// CreateAdminRequest is the payload of the admin action.
type CreateAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateAdmin adds an admin account and returns its id when reported.
func (c *Client) CreateAdmin(ctx context.Context, a CreateAdminRequest) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.call(ctx, ActionAdmin, http.MethodPost, a, true, &out); err != nil {
		return 0, fmt.Errorf("client.CreateAdmin: %w", err)
	}
	return out.ID, nil
}

// SubmitOrderRequest is the payload of the public order action.
type SubmitOrderRequest struct {
	PrivilegeID int64  `json:"privilege_id"`
	Nickname    string `json:"nickname"`
	Email       string `json:"email"`
}

// SubmitOrder places a storefront order and returns its id when reported.
func (c *Client) SubmitOrder(ctx context.Context, o SubmitOrderRequest) (int64, error) {
	var out struct {
		OrderID int64 `json:"order_id"`
	}
	if err := c.call(ctx, ActionOrder, http.MethodPost, o, false, &out); err != nil {
		return 0, fmt.Errorf("client.SubmitOrder: %w", err)
	}
	return out.OrderID, nil
}
