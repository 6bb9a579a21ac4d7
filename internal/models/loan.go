package models

import "time"

// Loan currency codes.
const (
	CurrencyVND = "VND"
	CurrencySGD = "SGD"
)

// Loan statuses.
const (
	LoanStatusDue    = "due"
	LoanStatusRepaid = "repaid"
)

// Loan represents a customer loan. Amortization is handled outside this
// service; loans are stored and listed only.
type Loan struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	Amount            float64   `json:"amount"`
	Terms             int       `json:"terms"`
	OutstandingAmount float64   `json:"outstanding_amount"`
	CurrencyCode      string    `json:"currency_code"`
	ProcessedAt       time.Time `json:"processed_at"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewLoan builds a loan with derived fields computed up front: a fresh loan
// owes its full amount unless explicitly created with nothing outstanding.
func NewLoan(userID int64, amount float64, terms int, outstanding float64, currency string, processedAt time.Time) *Loan {
	if outstanding != 0 {
		outstanding = amount
	}
	return &Loan{
		UserID:            userID,
		Amount:            amount,
		Terms:             terms,
		OutstandingAmount: outstanding,
		CurrencyCode:      currency,
		ProcessedAt:       processedAt,
		Status:            LoanStatusDue,
	}
}
