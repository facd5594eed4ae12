package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/common"
)

const defaultRequestTimeout = 15 * time.Second

// HTTPClient talks JSON over HTTP to the remote data service.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
}

// NewHTTPClient builds a client for the service rooted at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultRequestTimeout},
	}
}

type errorBody struct {
	Message string `json:"message"`
}

// do performs one request. A nil token means unauthenticated; out may be nil
// when the response body is irrelevant.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return c.mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return mapStatusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, token, "application/json", body, out)
}

func (c *HTTPClient) mapTransportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
}

func mapStatusError(resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&eb)
	msg := eb.Message
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s: %w", msg, common.ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, common.ErrNotFound)
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		return fmt.Errorf("%s: %w", msg, common.ErrRejected)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%s: %w", msg, common.ErrUnavailable)
	default:
		return fmt.Errorf("%s: %w", msg, common.ErrInternal)
	}
}

func (c *HTTPClient) Customers(ctx context.Context, auth models.AuthContext) ([]models.Customer, error) {
	var out []models.Customer
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/customers", auth.AccessToken, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Invoices(ctx context.Context, auth models.AuthContext) ([]models.Invoice, error) {
	var out []models.Invoice
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/invoices", auth.AccessToken, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Interactions(ctx context.Context, auth models.AuthContext) ([]models.InteractionLog, error) {
	var out []models.InteractionLog
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/interactions", auth.AccessToken, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateInvoiceWithCustomer(ctx context.Context, auth models.AuthContext, req CreateInvoiceRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/rpc/create_invoice_with_customer", auth.AccessToken, req, nil)
}

func (c *HTTPClient) AddPayment(ctx context.Context, auth models.AuthContext, req AddPaymentRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/rpc/add_payment", auth.AccessToken, req, nil)
}

func (c *HTTPClient) AddNote(ctx context.Context, auth models.AuthContext, req AddNoteRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/rpc/add_note", auth.AccessToken, req, nil)
}

func (c *HTTPClient) PostponeDueDate(ctx context.Context, auth models.AuthContext, req PostponeDueDateRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/rpc/postpone_due_date", auth.AccessToken, req, nil)
}

type deleteInvoiceRequest struct {
	InvoiceID string `json:"invoice_id"`
}

func (c *HTTPClient) DeleteInvoice(ctx context.Context, auth models.AuthContext, invoiceID string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/rpc/delete_invoice", auth.AccessToken, deleteInvoiceRequest{InvoiceID: invoiceID}, nil)
}

type deleteCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

func (c *HTTPClient) DeleteCustomer(ctx context.Context, auth models.AuthContext, customerID string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/rpc/delete_customer", auth.AccessToken, deleteCustomerRequest{CustomerID: customerID}, nil)
}

func (c *HTTPClient) UploadObject(ctx context.Context, auth models.AuthContext, path string, data []byte) error {
	return c.do(ctx, http.MethodPost, "/storage/v1/object/"+path, auth.AccessToken,
		"application/octet-stream", bytes.NewReader(data), nil)
}

func (c *HTTPClient) DeleteObject(ctx context.Context, auth models.AuthContext, path string) error {
	return c.do(ctx, http.MethodDelete, "/storage/v1/object/"+path, auth.AccessToken, "", nil, nil)
}

type signResponse struct {
	SignedURL string `json:"signed_url"`
}

func (c *HTTPClient) SignObjectURL(ctx context.Context, auth models.AuthContext, path string) (string, error) {
	var out signResponse
	if err := c.doJSON(ctx, http.MethodPost, "/storage/v1/object/sign/"+path, auth.AccessToken, nil, &out); err != nil {
		return "", err
	}
	return out.SignedURL, nil
}

func (c *HTTPClient) Login(ctx context.Context, creds Credentials) (*Session, error) {
	var out Session
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", "", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Logout(ctx context.Context, auth models.AuthContext) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/auth/logout", auth.AccessToken, nil, nil)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return c.do(ctx, http.MethodGet, "/api/v1/ping", "", "", nil, nil)
}

// Close releases idle transport connections.
func (c *HTTPClient) Close() error {
	c.httpc.CloseIdleConnections()
	return nil
}

var _ Client = (*HTTPClient)(nil)
