package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/corebank/finance-service/internal/models"
)

// CreateLoan creates a new loan in the database
func (r *Repository) CreateLoan(ctx context.Context, loan *models.Loan) error {
	query := `
		INSERT INTO finance.loans (user_id, amount, terms, outstanding_amount, currency_code, processed_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, loan.UserID, loan.Amount, loan.Terms,
		loan.OutstandingAmount, loan.CurrencyCode, loan.ProcessedAt, loan.Status).
		Scan(&loan.ID, &loan.CreatedAt, &loan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

// ListLoansByUser returns the user's loans.
func (r *Repository) ListLoansByUser(ctx context.Context, userID int64) ([]models.Loan, error) {
	query := `
		SELECT id, user_id, amount, terms, outstanding_amount, currency_code, processed_at, status, created_at, updated_at
		FROM finance.loans
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	loans := []models.Loan{}
	for rows.Next() {
		var loan models.Loan
		if err := rows.Scan(&loan.ID, &loan.UserID, &loan.Amount, &loan.Terms, &loan.OutstandingAmount,
			&loan.CurrencyCode, &loan.ProcessedAt, &loan.Status, &loan.CreatedAt, &loan.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

// FindLoanByID retrieves a loan by identifier
func (r *Repository) FindLoanByID(ctx context.Context, id int64) (*models.Loan, error) {
	query := `
		SELECT id, user_id, amount, terms, outstanding_amount, currency_code, processed_at, status, created_at, updated_at
		FROM finance.loans
		WHERE id = $1`
	loan := &models.Loan{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&loan.ID, &loan.UserID, &loan.Amount, &loan.Terms, &loan.OutstandingAmount,
			&loan.CurrencyCode, &loan.ProcessedAt, &loan.Status, &loan.CreatedAt, &loan.UpdatedAt)
	if err != nil {
		if err = translateErr(err); err == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan: %w", err)
	}
	return loan, nil
}

// CreateScheduledRepayment creates a scheduled repayment for a loan
func (r *Repository) CreateScheduledRepayment(ctx context.Context, sr *models.ScheduledRepayment) error {
	query := `
		INSERT INTO finance.scheduled_repayments (loan_id, amount, outstanding_amount, currency_code, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, sr.LoanID, sr.Amount, sr.OutstandingAmount,
		sr.CurrencyCode, sr.DueDate, sr.Status).
		Scan(&sr.ID, &sr.CreatedAt, &sr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create scheduled repayment: %w", err)
	}
	return nil
}

// ListScheduledRepaymentsByLoan returns the loan's scheduled repayments.
func (r *Repository) ListScheduledRepaymentsByLoan(ctx context.Context, loanID int64) ([]models.ScheduledRepayment, error) {
	query := `
		SELECT id, loan_id, amount, outstanding_amount, currency_code, due_date, status, created_at, updated_at
		FROM finance.scheduled_repayments
		WHERE loan_id = $1
		ORDER BY due_date`
	rows, err := r.db.QueryContext(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled repayments: %w", err)
	}
	defer rows.Close()

	repayments := []models.ScheduledRepayment{}
	for rows.Next() {
		var sr models.ScheduledRepayment
		if err := rows.Scan(&sr.ID, &sr.LoanID, &sr.Amount, &sr.OutstandingAmount,
			&sr.CurrencyCode, &sr.DueDate, &sr.Status, &sr.CreatedAt, &sr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scheduled repayment: %w", err)
		}
		repayments = append(repayments, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list scheduled repayments: %w", err)
	}
	return repayments, nil
}

// DueRepayment pairs a due scheduled repayment with its loan owner's
// contact details for the reminder job.
type DueRepayment struct {
	Repayment models.ScheduledRepayment
	Username  string
	Email     string
}

// DueScheduledRepayments returns repayments still due on or before the given
// date, joined with the owning user.
func (r *Repository) DueScheduledRepayments(ctx context.Context, onOrBefore time.Time) ([]DueRepayment, error) {
	query := `
		SELECT sr.id, sr.loan_id, sr.amount, sr.outstanding_amount, sr.currency_code, sr.due_date, sr.status, sr.created_at, sr.updated_at,
			u.username, u.email
		FROM finance.scheduled_repayments sr
		JOIN finance.loans l ON l.id = sr.loan_id
		JOIN finance.users u ON u.id = l.user_id
		WHERE sr.status = $1 AND sr.due_date <= $2
		ORDER BY sr.due_date`
	rows, err := r.db.QueryContext(ctx, query, models.RepaymentStatusDue, onOrBefore)
	if err != nil {
		return nil, fmt.Errorf("failed to list due repayments: %w", err)
	}
	defer rows.Close()

	due := []DueRepayment{}
	for rows.Next() {
		var d DueRepayment
		if err := rows.Scan(&d.Repayment.ID, &d.Repayment.LoanID, &d.Repayment.Amount,
			&d.Repayment.OutstandingAmount, &d.Repayment.CurrencyCode, &d.Repayment.DueDate,
			&d.Repayment.Status, &d.Repayment.CreatedAt, &d.Repayment.UpdatedAt,
			&d.Username, &d.Email); err != nil {
			return nil, fmt.Errorf("failed to scan due repayment: %w", err)
		}
		due = append(due, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list due repayments: %w", err)
	}
	return due, nil
}
