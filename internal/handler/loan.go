package handler

import (
	"net/http"

	"github.com/corebank/finance-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// LoanHandler exposes read-only loan endpoints.
type LoanHandler struct {
	svc    *service.LoanService
	logger *logrus.Logger
}

// NewLoanHandler initializes a new loan handler
func NewLoanHandler(svc *service.LoanService, logger *logrus.Logger) *LoanHandler {
	return &LoanHandler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the loan routes on an authenticated router.
func (h *LoanHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/loans", h.List).Methods("GET")
	router.HandleFunc("/loans/{id:[0-9]+}", h.Get).Methods("GET")
	router.HandleFunc("/loans/{id:[0-9]+}/scheduled-repayments", h.ListScheduledRepayments).Methods("GET")
}

// List returns the principal's loans
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	loans, err := h.svc.List(r.Context(), p)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

// Get returns a single loan
func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	loan, err := h.svc.Get(r.Context(), p, pathID(r))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

// ListScheduledRepayments returns the repayment schedule of an owned loan
func (h *LoanHandler) ListScheduledRepayments(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	repayments, err := h.svc.ListScheduledRepayments(r.Context(), p, pathID(r))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, repayments)
}
