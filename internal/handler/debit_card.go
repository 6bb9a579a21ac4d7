package handler

import (
	"net/http"
	"strconv"

	"github.com/corebank/finance-service/internal/apperr"
	"github.com/corebank/finance-service/internal/middleware"
	"github.com/corebank/finance-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// DebitCardHandler exposes the /debit-cards resource.
type DebitCardHandler struct {
	svc    *service.DebitCardService
	logger *logrus.Logger
}

// NewDebitCardHandler initializes a new debit card handler
func NewDebitCardHandler(svc *service.DebitCardService, logger *logrus.Logger) *DebitCardHandler {
	return &DebitCardHandler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the debit card routes on an authenticated router.
func (h *DebitCardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/debit-cards", h.List).Methods("GET")
	router.HandleFunc("/debit-cards", h.Create).Methods("POST")
	router.HandleFunc("/debit-cards/{id:[0-9]+}", h.Get).Methods("GET")
	router.HandleFunc("/debit-cards/{id:[0-9]+}", h.Update).Methods("PUT")
	router.HandleFunc("/debit-cards/{id:[0-9]+}", h.Delete).Methods("DELETE")
}

// principal extracts the authenticated principal or responds 401.
func principal(w http.ResponseWriter, r *http.Request) (service.Principal, bool) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "unauthenticated"})
	}
	return p, ok
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

type createDebitCardRequest struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type updateDebitCardRequest struct {
	IsActive *bool `json:"is_active"`
}

// List returns the principal's live debit cards
func (h *DebitCardHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	cards, err := h.svc.List(r.Context(), p)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

// Create creates a debit card for the principal
func (h *DebitCardHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req createDebitCardRequest
	fieldErrs, err := decodeBody(r, &req)
	if err != nil {
		badRequest(w)
		return
	}
	if fieldErrs != nil {
		respondError(w, h.logger, apperr.Validation(fieldErrs))
		return
	}

	card, err := h.svc.Create(r.Context(), p, service.CreateDebitCardInput{
		Type:   req.Type,
		Number: req.Number,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

// Get returns a single debit card
func (h *DebitCardHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	card, err := h.svc.Get(r.Context(), p, pathID(r))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

// Update toggles a debit card's activation state
func (h *DebitCardHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req updateDebitCardRequest
	fieldErrs, err := decodeBody(r, &req)
	if err != nil {
		badRequest(w)
		return
	}

	card, err := h.svc.Update(r.Context(), p, pathID(r), service.UpdateDebitCardInput{
		IsActive:    req.IsActive,
		FieldErrors: fieldErrs,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

// Delete soft-deletes a debit card
func (h *DebitCardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), p, pathID(r)); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
