package service

import (
	"context"
	"errors"

	"github.com/corebank/finance-service/internal/apperr"
	"github.com/corebank/finance-service/internal/models"
	"github.com/corebank/finance-service/internal/repository"
	"github.com/sirupsen/logrus"
)

// LoanService exposes read access to loans and their scheduled repayments.
// Loan origination and amortization live outside this service.
type LoanService struct {
	store repository.Store
	log   *logrus.Logger
}

// NewLoanService initializes a new loan service
func NewLoanService(store repository.Store, log *logrus.Logger) *LoanService {
	return &LoanService{store: store, log: log}
}

// List returns the principal's loans.
func (s *LoanService) List(ctx context.Context, p Principal) ([]models.Loan, error) {
	return s.store.ListLoansByUser(ctx, p.ID)
}

// Get returns a single loan, applying the same forbidden/not-found split as
// debit cards.
func (s *LoanService) Get(ctx context.Context, p Principal, id int64) (*models.Loan, error) {
	loan, err := s.store.FindLoanByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("loan not found")
		}
		return nil, err
	}
	if err := Authorize(p, loan.UserID); err != nil {
		return nil, err
	}
	return loan, nil
}

// ListScheduledRepayments returns the repayment schedule of an owned loan.
func (s *LoanService) ListScheduledRepayments(ctx context.Context, p Principal, loanID int64) ([]models.ScheduledRepayment, error) {
	loan, err := s.Get(ctx, p, loanID)
	if err != nil {
		return nil, err
	}
	return s.store.ListScheduledRepaymentsByLoan(ctx, loan.ID)
}
