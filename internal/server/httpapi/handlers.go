package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/common"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/services"
)

// maxBlobSize caps uploaded invoice scans at 10 MiB.
const maxBlobSize = 10 << 20

type errorBody struct {
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrRejected):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		s.log.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorBody{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// readJSON decodes the request body into v, rejecting malformed payloads.
func readJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.ErrValidation
	}
	return nil
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// --- auth ---

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := readJSON(r, &creds); err != nil {
		s.writeError(w, r, err)
		return
	}
	user, err := s.users.Register(r.Context(), creds.Email, creds.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"user_id": user.ID})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := readJSON(r, &creds); err != nil {
		s.writeError(w, r, err)
		return
	}
	session, err := s.users.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	session, err := s.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Logout(r.Context(), userIDFromContext(r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// --- row queries ---

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	rows, err := s.invoices.Customers(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	rows, err := s.invoices.Invoices(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleListInteractions(w http.ResponseWriter, r *http.Request) {
	rows, err := s.invoices.Interactions(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// --- procedures ---

func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req services.CreateInvoiceRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	inv, err := s.invoices.CreateInvoiceWithCustomer(r.Context(), userIDFromContext(r.Context()), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (s *Server) handleAddPayment(w http.ResponseWriter, r *http.Request) {
	var req services.AddPaymentRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.invoices.AddPayment(r.Context(), userIDFromContext(r.Context()), req); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var req services.AddNoteRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.invoices.AddNote(r.Context(), userIDFromContext(r.Context()), req); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handlePostponeDueDate(w http.ResponseWriter, r *http.Request) {
	var req services.PostponeDueDateRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.invoices.PostponeDueDate(r.Context(), userIDFromContext(r.Context()), req); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type deleteInvoiceRequest struct {
	InvoiceID string `json:"invoice_id"`
}

func (s *Server) handleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	var req deleteInvoiceRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.invoices.DeleteInvoice(r.Context(), userIDFromContext(r.Context()), req.InvoiceID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type deleteCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	var req deleteCustomerRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.invoices.DeleteCustomer(r.Context(), userIDFromContext(r.Context()), req.CustomerID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// --- blob storage ---

// ownsBlobPath reports whether path lies inside the user's blob namespace.
// Scans are keyed as invoice-scans/<userID>/<name>; paths outside that
// prefix are hidden from the caller the same way foreign rows are.
func ownsBlobPath(userID, path string) bool {
	return strings.HasPrefix(path, "invoice-scans/"+userID+"/")
}

func (s *Server) handleUploadObject(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["path"]
	if !ownsBlobPath(userIDFromContext(r.Context()), path) {
		s.writeError(w, r, common.ErrNotFound)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBlobSize+1))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(data) > maxBlobSize {
		s.writeError(w, r, common.ErrValidation)
		return
	}

	if err := s.storage.Upload(r.Context(), path, data); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDeleteObject(w http.ResponseWriter, r *http.Request) {
	if !ownsBlobPath(userIDFromContext(r.Context()), mux.Vars(r)["path"]) {
		s.writeError(w, r, common.ErrNotFound)
		return
	}
	if err := s.storage.Delete(r.Context(), mux.Vars(r)["path"]); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type signResponse struct {
	SignedURL string `json:"signed_url"`
}

func (s *Server) handleSignObject(w http.ResponseWriter, r *http.Request) {
	if !ownsBlobPath(userIDFromContext(r.Context()), mux.Vars(r)["path"]) {
		s.writeError(w, r, common.ErrNotFound)
		return
	}
	url, err := s.storage.SignURL(mux.Vars(r)["path"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, signResponse{SignedURL: url})
}

// handleGetSignedObject serves a blob to anyone holding a valid signed URL.
// The token itself is the credential; no Authorization header is required.
func (s *Server) handleGetSignedObject(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(common.SignedURLTokenParam)
	if token == "" {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}

	path, err := s.storage.VerifyURLToken(token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if path != mux.Vars(r)["path"] {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}

	data, err := s.storage.Get(r.Context(), path)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
