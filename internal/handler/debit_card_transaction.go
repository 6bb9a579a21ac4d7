package handler

import (
	"net/http"

	"github.com/corebank/finance-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// DebitCardTransactionHandler exposes the /debit-card-transactions resource.
type DebitCardTransactionHandler struct {
	svc    *service.DebitCardTransactionService
	logger *logrus.Logger
}

// NewDebitCardTransactionHandler initializes a new transaction handler
func NewDebitCardTransactionHandler(svc *service.DebitCardTransactionService, logger *logrus.Logger) *DebitCardTransactionHandler {
	return &DebitCardTransactionHandler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the transaction routes on an authenticated router.
func (h *DebitCardTransactionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/debit-card-transactions", h.List).Methods("GET")
	router.HandleFunc("/debit-card-transactions", h.Create).Methods("POST")
	router.HandleFunc("/debit-card-transactions/{id:[0-9]+}", h.Get).Methods("GET")
}

type createTransactionRequest struct {
	DebitCardID  *int64   `json:"debit_card_id"`
	Amount       *float64 `json:"amount"`
	Type         string   `json:"type"`
	CurrencyCode string   `json:"currency_code"`
}

// List returns transactions on the principal's live cards
func (h *DebitCardTransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	txns, err := h.svc.List(r.Context(), p)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, txns)
}

// Create creates a transaction against the target card
func (h *DebitCardTransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req createTransactionRequest
	fieldErrs, err := decodeBody(r, &req)
	if err != nil {
		badRequest(w)
		return
	}

	txn, err := h.svc.Create(r.Context(), p, service.CreateTransactionInput{
		DebitCardID:  req.DebitCardID,
		Amount:       req.Amount,
		Type:         req.Type,
		CurrencyCode: req.CurrencyCode,
		FieldErrors:  fieldErrs,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, txn)
}

// Get returns a single transaction
func (h *DebitCardTransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	txn, err := h.svc.Get(r.Context(), p, pathID(r))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, txn)
}
