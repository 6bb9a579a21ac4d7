package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/corebank/finance-service/internal/middleware"
	"github.com/corebank/finance-service/internal/models"
	"github.com/corebank/finance-service/internal/repository/memory"
	"github.com/corebank/finance-service/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

// testEnv wires the real handlers, services and middleware over the
// in-memory store, the same shape main.go builds over Postgres.
type testEnv struct {
	store   *memory.Store
	router  *mux.Router
	cardSeq int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := memory.NewStore()
	authSvc := service.NewAuthService(store, logger, testJWTSecret)
	cardSvc := service.NewDebitCardService(store, logger, "400000")
	txnSvc := service.NewDebitCardTransactionService(store, logger)
	loanSvc := service.NewLoanService(store, logger)

	r := mux.NewRouter()
	NewAuthHandler(authSvc, logger).RegisterRoutes(r)
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(testJWTSecret, logger))
	NewDebitCardHandler(cardSvc, logger).RegisterRoutes(authRouter)
	NewDebitCardTransactionHandler(txnSvc, logger).RegisterRoutes(authRouter)
	NewLoanHandler(loanSvc, logger).RegisterRoutes(authRouter)

	return &testEnv{store: store, router: r}
}

func (e *testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Username: strings.Split(email, "@")[0], Email: email, PasswordHash: "x"}
	require.NoError(t, e.store.CreateUser(context.Background(), user))
	return user
}

func (e *testEnv) createCard(t *testing.T, userID int64, mutate ...func(*models.DebitCard)) *models.DebitCard {
	t.Helper()
	e.cardSeq++
	card := &models.DebitCard{
		UserID:   userID,
		Type:     models.CardTypeGPN,
		Number:   fmt.Sprintf("4%015d", e.cardSeq),
		IsActive: true,
	}
	for _, m := range mutate {
		m(card)
	}
	if !card.IsActive && card.DisabledAt == nil {
		now := time.Now()
		card.DisabledAt = &now
	}
	require.NoError(t, e.store.CreateDebitCard(context.Background(), card))
	return card
}

func (e *testEnv) createTransaction(t *testing.T, cardID int64) *models.DebitCardTransaction {
	t.Helper()
	txn := &models.DebitCardTransaction{
		DebitCardID:  cardID,
		Amount:       1000,
		CurrencyCode: "VND",
		Type:         models.TransactionTypeDebit,
	}
	require.NoError(t, e.store.CreateDebitCardTransaction(context.Background(), txn))
	return txn
}

func tokenFor(t *testing.T, userID int64) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

// request performs an HTTP request against the router. An empty token sends
// no Authorization header.
func (e *testEnv) request(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// validationErrors extracts the field names of a 422 response body.
func validationErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Errors
}
