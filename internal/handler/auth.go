package handler

import (
	"net/http"

	"github.com/corebank/finance-service/internal/apperr"
	"github.com/corebank/finance-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	svc    *service.AuthService
	logger *logrus.Logger
}

// NewAuthHandler initializes a new auth handler
func NewAuthHandler(svc *service.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the public auth routes.
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/register", h.Register).Methods("POST")
	router.HandleFunc("/login", h.Login).Methods("POST")
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	fieldErrs, err := decodeBody(r, &req)
	if err != nil {
		badRequest(w)
		return
	}
	if fieldErrs == nil {
		fieldErrs = validateStruct(req)
	}
	if fieldErrs != nil {
		respondError(w, h.logger, apperr.Validation(fieldErrs))
		return
	}

	user, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	fieldErrs, err := decodeBody(r, &req)
	if err != nil {
		badRequest(w)
		return
	}
	if fieldErrs == nil {
		fieldErrs = validateStruct(req)
	}
	if fieldErrs != nil {
		respondError(w, h.logger, apperr.Validation(fieldErrs))
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
