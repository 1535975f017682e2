package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// APIError is a non-2xx response decoded into the server's error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return e.Message
}

// Client talks to the portal REST API. Requests carry the bearer token
// stored for the client's role; tenant and admin commands construct
// separate clients over the same session store.
type Client struct {
	baseURL  string
	role     string
	sessions *SessionStore
	http     *http.Client
}

func New(baseURL, role string, sessions *SessionStore) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		role:     role,
		sessions: sessions,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) authorize(req *http.Request) {
	if token := c.sessions.Token(c.role); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}

// Register creates a tenant account. It does not log in: new tenants
// have no network access until an admin approves them.
func (c *Client) Register(ctx context.Context, in RegisterInput) (Tenant, error) {
	var resp struct {
		Tenant Tenant `json:"tenant"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &resp)
	return resp.Tenant, err
}

// Login authenticates with an email address or phone number and stores
// the returned token under the client's role.
func (c *Client) Login(ctx context.Context, identifier, password string) (Tenant, error) {
	var resp struct {
		Token  string `json:"token"`
		Tenant Tenant `json:"tenant"`
	}
	body := map[string]string{"identifier": identifier, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return Tenant{}, err
	}
	if err := c.sessions.SetToken(RoleTenant, resp.Token); err != nil {
		return Tenant{}, err
	}
	return resp.Tenant, nil
}

func (c *Client) AdminLogin(ctx context.Context, email, password string) (Admin, error) {
	var resp struct {
		Token string `json:"token"`
		Admin Admin  `json:"admin"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/admin/login", body, &resp); err != nil {
		return Admin{}, err
	}
	if err := c.sessions.SetToken(RoleAdmin, resp.Token); err != nil {
		return Admin{}, err
	}
	if err := c.sessions.SetAdminProfile(resp.Admin); err != nil {
		return Admin{}, err
	}
	return resp.Admin, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "newPassword": password}
	return c.do(ctx, http.MethodPost, "/api/auth/reset-password", body, nil)
}

// Me returns the tenant profile behind the stored token.
func (c *Client) Me(ctx context.Context) (Tenant, error) {
	var tenant Tenant
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &tenant)
	return tenant, err
}

func (c *Client) ListTenants(ctx context.Context) ([]Tenant, error) {
	var tenants []Tenant
	err := c.do(ctx, http.MethodGet, "/api/tenants", nil, &tenants)
	return tenants, err
}

func (c *Client) ActivateTenant(ctx context.Context, id string) (Tenant, error) {
	return c.mutateTenant(ctx, http.MethodPost, "/api/tenants/activate/"+url.PathEscape(id), nil)
}

func (c *Client) DeactivateTenant(ctx context.Context, id string) (Tenant, error) {
	return c.mutateTenant(ctx, http.MethodPost, "/api/tenants/deactivate/"+url.PathEscape(id), nil)
}

func (c *Client) BlockTenant(ctx context.Context, id string) (Tenant, error) {
	return c.mutateTenant(ctx, http.MethodPost, "/api/tenants/block", map[string]string{"tenantId": id})
}

func (c *Client) UnblockTenant(ctx context.Context, id string) (Tenant, error) {
	return c.mutateTenant(ctx, http.MethodPost, "/api/tenants/unblock", map[string]string{"tenantId": id})
}

func (c *Client) ApproveTenant(ctx context.Context, id string) (Tenant, error) {
	return c.mutateTenant(ctx, http.MethodPost, "/api/tenants/approve/"+url.PathEscape(id), nil)
}

func (c *Client) mutateTenant(ctx context.Context, method, path string, body any) (Tenant, error) {
	var resp struct {
		Tenant Tenant `json:"tenant"`
	}
	err := c.do(ctx, method, path, body, &resp)
	return resp.Tenant, err
}

func (c *Client) DeleteTenant(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tenants/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListPayments(ctx context.Context) ([]Payment, error) {
	var payments []Payment
	err := c.do(ctx, http.MethodGet, "/api/payments/all", nil, &payments)
	return payments, err
}

func (c *Client) PaymentStatus(ctx context.Context) ([]Payment, error) {
	var payments []Payment
	err := c.do(ctx, http.MethodGet, "/api/payments/status", nil, &payments)
	return payments, err
}

// UploadProof submits a proof-of-payment file as multipart form data.
func (c *Client) UploadProof(ctx context.Context, path string) (Payment, error) {
	file, err := os.Open(path)
	if err != nil {
		return Payment{}, err
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("proofOfPayment", filepath.Base(path))
	if err != nil {
		return Payment{}, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return Payment{}, err
	}
	if err := writer.WriteField("type", "POP"); err != nil {
		return Payment{}, err
	}
	if err := writer.Close(); err != nil {
		return Payment{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/payments/upload", &buf)
	if err != nil {
		return Payment{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return Payment{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Payment{}, decodeError(resp)
	}

	var out struct {
		Payment Payment `json:"payment"`
	}
	err = json.NewDecoder(resp.Body).Decode(&out)
	return out.Payment, err
}

func (c *Client) SubmitCash(ctx context.Context) (Payment, error) {
	var resp struct {
		Payment Payment `json:"payment"`
	}
	err := c.do(ctx, http.MethodPost, "/api/payments/cash", nil, &resp)
	return resp.Payment, err
}

func (c *Client) ApprovePayment(ctx context.Context, id string) (Payment, error) {
	var resp struct {
		Payment Payment `json:"payment"`
	}
	err := c.do(ctx, http.MethodPost, "/api/payments/approve/"+url.PathEscape(id), nil, &resp)
	return resp.Payment, err
}

func (c *Client) RejectPayment(ctx context.Context, id string) (Payment, error) {
	var resp struct {
		Payment Payment `json:"payment"`
	}
	err := c.do(ctx, http.MethodPost, "/api/payments/reject/"+url.PathEscape(id), nil, &resp)
	return resp.Payment, err
}

// ProofURL builds a direct link to a stored proof file. The token rides
// in the query string so the URL works in contexts that cannot set an
// Authorization header.
func (c *Client) ProofURL(paymentID string) string {
	u := c.baseURL + "/api/payments/proof/" + url.PathEscape(paymentID)
	if token := c.sessions.Token(c.role); token != "" {
		u += "?token=" + url.QueryEscape(token)
	}
	return u
}

func (c *Client) SubmitContact(ctx context.Context, in ContactInput) error {
	return c.do(ctx, http.MethodPost, "/api/contact/submit", in, nil)
}
