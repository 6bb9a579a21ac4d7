package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/corebank/finance-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createLoan(t *testing.T, userID int64) *models.Loan {
	t.Helper()
	loan := models.NewLoan(userID, 5000, 3, 5000, models.CurrencyVND, time.Now())
	require.NoError(t, e.store.CreateLoan(context.Background(), loan))
	return loan
}

func (e *testEnv) createRepayment(t *testing.T, loanID int64, dueDate time.Time) *models.ScheduledRepayment {
	t.Helper()
	sr := &models.ScheduledRepayment{
		LoanID:            loanID,
		Amount:            1667,
		OutstandingAmount: 1667,
		CurrencyCode:      models.CurrencyVND,
		DueDate:           dueDate,
		Status:            models.RepaymentStatusDue,
	}
	require.NoError(t, e.store.CreateScheduledRepayment(context.Background(), sr))
	return sr
}

func TestCustomerCanSeeOwnLoans(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	other := env.createUser(t, "bob@example.com")
	loan := env.createLoan(t, user.ID)
	env.createLoan(t, other.ID)

	rec := env.request(t, http.MethodGet, "/loans", tokenFor(t, user.ID), "")

	require.Equal(t, http.StatusOK, rec.Code)
	loans := decodeList(t, rec)
	require.Len(t, loans, 1)
	assert.Equal(t, float64(loan.ID), loans[0]["id"])
	assert.Equal(t, float64(5000), loans[0]["outstanding_amount"])
}

func TestCustomerCanSeeSingleLoan(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	loan := env.createLoan(t, user.ID)

	rec := env.request(t, http.MethodGet, fmt.Sprintf("/loans/%d", loan.ID), tokenFor(t, user.ID), "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeObject(t, rec)
	assert.Equal(t, float64(loan.ID), body["id"])
	assert.Equal(t, models.LoanStatusDue, body["status"])
}

func TestCustomerCannotSeeOtherCustomersLoan(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	other := env.createUser(t, "bob@example.com")
	loan := env.createLoan(t, other.ID)

	rec := env.request(t, http.MethodGet, fmt.Sprintf("/loans/%d", loan.ID), tokenFor(t, user.ID), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.request(t, http.MethodGet, fmt.Sprintf("/loans/%d/scheduled-repayments", loan.ID), tokenFor(t, user.ID), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMissingLoanIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com")

	rec := env.request(t, http.MethodGet, "/loans/9999", tokenFor(t, user.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomerCanSeeRepaymentSchedule(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	loan := env.createLoan(t, user.ID)
	first := env.createRepayment(t, loan.ID, time.Now().AddDate(0, 1, 0))
	env.createRepayment(t, loan.ID, time.Now().AddDate(0, 2, 0))

	rec := env.request(t, http.MethodGet, fmt.Sprintf("/loans/%d/scheduled-repayments", loan.ID), tokenFor(t, user.ID), "")

	require.Equal(t, http.StatusOK, rec.Code)
	repayments := decodeList(t, rec)
	require.Len(t, repayments, 2)
	assert.Equal(t, float64(first.ID), repayments[0]["id"])
	assert.Equal(t, models.RepaymentStatusDue, repayments[0]["status"])
}

func TestLoanRoutesRequireAuthentication(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/loans", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
