// Package httpapi exposes the server over HTTP/JSON: auth endpoints, row
// queries, the atomic procedures under /api/v1/rpc, and the blob storage
// surface under /storage/v1/object.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/logging"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/config"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/services"
)

// Server binds the service layer to HTTP routes.
type Server struct {
	users    *services.UserService
	invoices *services.InvoiceService
	storage  *services.StorageService
	secret   []byte
	log      logging.Logger
}

// NewServer wires services into a Server.
func NewServer(users *services.UserService, invoices *services.InvoiceService,
	storage *services.StorageService, cfg *config.Config, log logging.Logger) *Server {
	return &Server{
		users:    users,
		invoices: invoices,
		storage:  storage,
		secret:   []byte(cfg.SecretKey),
		log:      log,
	}
}

// Router builds the full route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/ping", s.handlePing).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", s.handleRefresh).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.authMiddleware)
	authed.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	authed.HandleFunc("/customers", s.handleListCustomers).Methods(http.MethodGet)
	authed.HandleFunc("/invoices", s.handleListInvoices).Methods(http.MethodGet)
	authed.HandleFunc("/interactions", s.handleListInteractions).Methods(http.MethodGet)

	rpc := authed.PathPrefix("/rpc").Subrouter()
	rpc.HandleFunc("/create_invoice_with_customer", s.handleCreateInvoice).Methods(http.MethodPost)
	rpc.HandleFunc("/add_payment", s.handleAddPayment).Methods(http.MethodPost)
	rpc.HandleFunc("/add_note", s.handleAddNote).Methods(http.MethodPost)
	rpc.HandleFunc("/postpone_due_date", s.handlePostponeDueDate).Methods(http.MethodPost)
	rpc.HandleFunc("/delete_invoice", s.handleDeleteInvoice).Methods(http.MethodPost)
	rpc.HandleFunc("/delete_customer", s.handleDeleteCustomer).Methods(http.MethodPost)

	// Signed-URL routes come before the generic object routes so the
	// "sign/" prefix is not swallowed by the {path} wildcard.
	storage := r.PathPrefix("/storage/v1/object").Subrouter()
	storage.HandleFunc("/sign/{path:.+}", s.handleGetSignedObject).Methods(http.MethodGet)

	storageAuthed := storage.NewRoute().Subrouter()
	storageAuthed.Use(s.authMiddleware)
	storageAuthed.HandleFunc("/sign/{path:.+}", s.handleSignObject).Methods(http.MethodPost)
	storageAuthed.HandleFunc("/{path:.+}", s.handleUploadObject).Methods(http.MethodPost)
	storageAuthed.HandleFunc("/{path:.+}", s.handleDeleteObject).Methods(http.MethodDelete)

	return r
}
