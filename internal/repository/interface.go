package repository

import (
	"context"
	"time"

	"github.com/corebank/finance-service/internal/models"
)

// Store is the persistence contract consumed by the service layer. It is
// implemented by Repository over Postgres and by the in-memory store used in
// tests.
type Store interface {
	// WithinTx runs fn against a store bound to a single transaction.
	WithinTx(ctx context.Context, fn func(Store) error) error

	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)

	CreateDebitCard(ctx context.Context, card *models.DebitCard) error
	ListDebitCardsByUser(ctx context.Context, userID int64) ([]models.DebitCard, error)
	FindDebitCardByID(ctx context.Context, id int64) (*models.DebitCard, error)
	FindDebitCardByIDForUpdate(ctx context.Context, id int64) (*models.DebitCard, error)
	UpdateDebitCardActivation(ctx context.Context, card *models.DebitCard) error
	SoftDeleteDebitCard(ctx context.Context, id int64) error
	CardNumberExists(ctx context.Context, number string) (bool, error)
	CountTransactionsByCard(ctx context.Context, cardID int64) (int64, error)

	CreateDebitCardTransaction(ctx context.Context, txn *models.DebitCardTransaction) error
	ListTransactionsByUser(ctx context.Context, userID int64) ([]models.DebitCardTransaction, error)
	FindTransactionByID(ctx context.Context, id int64) (*models.DebitCardTransaction, int64, error)

	CreateLoan(ctx context.Context, loan *models.Loan) error
	ListLoansByUser(ctx context.Context, userID int64) ([]models.Loan, error)
	FindLoanByID(ctx context.Context, id int64) (*models.Loan, error)
	CreateScheduledRepayment(ctx context.Context, sr *models.ScheduledRepayment) error
	ListScheduledRepaymentsByLoan(ctx context.Context, loanID int64) ([]models.ScheduledRepayment, error)
	DueScheduledRepayments(ctx context.Context, onOrBefore time.Time) ([]DueRepayment, error)
}

var _ Store = (*Repository)(nil)
