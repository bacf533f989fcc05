// Package service adapts the domain components (auth, ledger) to the HTTP
// API consumed by the presentation layer. Each service struct is a thin
// transport adapter: decode the request, call the domain, map errors to
// status codes.
package service

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bytebank/bytebank/internal/auth"
	"github.com/bytebank/bytebank/internal/ledger"
	"github.com/bytebank/bytebank/internal/middleware"
)

// RegisterRoutes attaches all API endpoints to mux. Ledger routes require a
// valid session token; the authenticated username scopes every ledger call.
func RegisterRoutes(mux *http.ServeMux, authSvc *AuthService, ledgerSvc *LedgerService, jwtManager *auth.JWTManager) {
	mux.HandleFunc("POST /api/v1/register", authSvc.Register)
	mux.HandleFunc("POST /api/v1/login", authSvc.Login)

	protected := middleware.RequireAuth(jwtManager)
	mux.Handle("GET /api/v1/transactions", protected(http.HandlerFunc(ledgerSvc.ListTransactions)))
	mux.Handle("POST /api/v1/transactions", protected(http.HandlerFunc(ledgerSvc.AddTransaction)))
	mux.Handle("PUT /api/v1/transactions/{id}", protected(http.HandlerFunc(ledgerSvc.UpdateTransaction)))
	mux.Handle("DELETE /api/v1/transactions/{id}", protected(http.HandlerFunc(ledgerSvc.DeleteTransaction)))
	mux.Handle("GET /api/v1/summary", protected(http.HandlerFunc(ledgerSvc.GetSummary)))
	mux.Handle("GET /api/v1/categories", protected(http.HandlerFunc(ledgerSvc.ListCategories)))
	mux.Handle("GET /api/v1/payment-methods", protected(http.HandlerFunc(ledgerSvc.ListPaymentMethods)))
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondLedgerError maps domain errors to HTTP status codes:
// ValidationError -> 400, ErrNotFound -> 404, anything else -> 500.
func respondLedgerError(w http.ResponseWriter, err error) {
	var ve *ledger.ValidationError
	if errors.As(err, &ve) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error(), Field: ve.Field})
		return
	}
	if errors.Is(err, ledger.ErrNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, "storage failure")
}
