package models

import "time"

// Scheduled repayment statuses.
const (
	RepaymentStatusDue     = "due"
	RepaymentStatusPartial = "partial"
	RepaymentStatusRepaid  = "repaid"
)

// ScheduledRepayment represents a single scheduled payment for a loan
type ScheduledRepayment struct {
	ID                int64     `json:"id"`
	LoanID            int64     `json:"loan_id"`
	Amount            float64   `json:"amount"`
	OutstandingAmount float64   `json:"outstanding_amount"`
	CurrencyCode      string    `json:"currency_code"`
	DueDate           time.Time `json:"due_date"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
