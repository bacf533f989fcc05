package service

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bytebank/bytebank/internal/ledger"
	"github.com/bytebank/bytebank/internal/middleware"
	"github.com/bytebank/bytebank/internal/models"
)

// LedgerService exposes the transaction ledger over HTTP. Every handler
// scopes its work to the username placed in the context by the auth
// middleware.
type LedgerService struct {
	ledger *ledger.Service
	logger *slog.Logger
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(l *ledger.Service, logger *slog.Logger) *LedgerService {
	return &LedgerService{ledger: l, logger: logger}
}

type transactionRequest struct {
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Date          string `json:"date"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

func (r transactionRequest) fields() ledger.Fields {
	return ledger.Fields{
		Type:          r.Type,
		Amount:        r.Amount,
		Description:   r.Description,
		Category:      r.Category,
		Date:          r.Date,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
	}
}

// ListTransactions returns the full ledger in insertion order.
func (s *LedgerService) ListTransactions(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	respondJSON(w, http.StatusOK, s.ledger.List(r.Context(), username))
}

// AddTransaction validates the submitted fields and appends a new
// transaction, returning its assigned id.
func (s *LedgerService) AddTransaction(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.ledger.Add(r.Context(), username, req.fields())
	if err != nil {
		respondLedgerError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateTransaction replaces all fields of the transaction named in the
// path, keeping its id and ledger position.
func (s *LedgerService) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	id := r.PathValue("id")

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.ledger.Update(r.Context(), username, id, req.fields()); err != nil {
		respondLedgerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteTransaction removes the transaction named in the path.
func (s *LedgerService) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	if err := s.ledger.Delete(r.Context(), username, r.PathValue("id")); err != nil {
		respondLedgerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSummary returns the aggregate totals. It never fails: a broken ledger
// yields an all-zero summary so a polling dashboard keeps rendering.
func (s *LedgerService) GetSummary(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	respondJSON(w, http.StatusOK, s.ledger.Summary(r.Context(), username))
}

// ListCategories returns the closed category set presented by the UI.
func (s *LedgerService) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.Categories)
}

// ListPaymentMethods returns the closed payment-method set presented by the UI.
func (s *LedgerService) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.PaymentMethods)
}
