package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/common"
)

func testAuth() models.AuthContext {
	return models.AuthContext{UserID: "u1", AccessToken: "tok"}
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, common.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, common.ErrUnauthorized},
		{"not found", http.StatusNotFound, common.ErrNotFound},
		{"bad request", http.StatusBadRequest, common.ErrRejected},
		{"conflict", http.StatusConflict, common.ErrRejected},
		{"unprocessable", http.StatusUnprocessableEntity, common.ErrRejected},
		{"bad gateway", http.StatusBadGateway, common.ErrUnavailable},
		{"service unavailable", http.StatusServiceUnavailable, common.ErrUnavailable},
		{"internal", http.StatusInternalServerError, common.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "nope"})
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL)
			_, err := c.Invoices(context.Background(), testAuth())
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestTransportFailureMapsToUnavailable(t *testing.T) {
	// nothing listens here
	c := NewHTTPClient("http://127.0.0.1:1")
	_, err := c.Customers(context.Background(), testAuth())
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestLogin_DecodesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "a@b.c", creds.Email)

		_ = json.NewEncoder(w).Encode(Session{UserID: "u1", AccessToken: "at", RefreshToken: "rt"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	s, err := c.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, "at", s.AccessToken)
	assert.Equal(t, "rt", s.RefreshToken)
}

func TestUploadObject_SendsBytesWithBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/invoice-scans/u1/a.jpg", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, body)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	err := c.UploadObject(context.Background(), testAuth(), "invoice-scans/u1/a.jpg", []byte{1, 2, 3})
	require.NoError(t, err)
}

func TestSignObjectURL_ParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/sign/invoice-scans/u1/a.jpg", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"signed_url": "https://x/storage/v1/object/sign/invoice-scans/u1/a.jpg?token=T",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	u, err := c.SignObjectURL(context.Background(), testAuth(), "invoice-scans/u1/a.jpg")
	require.NoError(t, err)
	assert.Contains(t, u, "token=T")
}

func TestProcedures_PostToRPCPaths(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	ctx := context.Background()

	require.NoError(t, c.AddPayment(ctx, testAuth(), AddPaymentRequest{InvoiceID: "i1", Amount: 10}))
	assert.Equal(t, "/api/v1/rpc/add_payment", gotPath)
	assert.Equal(t, "i1", gotBody["invoice_id"])
	assert.Equal(t, 10.0, gotBody["amount"])

	require.NoError(t, c.DeleteInvoice(ctx, testAuth(), "i9"))
	assert.Equal(t, "/api/v1/rpc/delete_invoice", gotPath)
	assert.Equal(t, "i9", gotBody["invoice_id"])
}
