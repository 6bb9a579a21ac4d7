package models

import "time"

// Debit card transaction types.
const (
	TransactionTypePurchase = "purchase"
	TransactionTypeDebit    = "debit"
	TransactionTypeCredit   = "credit"
	TransactionTypeRefund   = "refund"
)

// TransactionTypes enumerates the accepted transaction types.
var TransactionTypes = []string{
	TransactionTypePurchase,
	TransactionTypeDebit,
	TransactionTypeCredit,
	TransactionTypeRefund,
}

// TransactionCurrencies enumerates the accepted transaction currency codes.
var TransactionCurrencies = []string{"IDR", "SGD", "THB", "VND"}

// DebitCardTransaction represents a transaction charged against a debit
// card. Transactions are immutable once created.
type DebitCardTransaction struct {
	ID           int64     `json:"id"`
	DebitCardID  int64     `json:"debit_card_id"`
	Amount       float64   `json:"amount"`
	CurrencyCode string    `json:"currency_code"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidTransactionType reports whether t is one of the accepted types.
func ValidTransactionType(t string) bool {
	for _, v := range TransactionTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidTransactionCurrency reports whether code is an accepted currency.
func ValidTransactionCurrency(code string) bool {
	for _, v := range TransactionCurrencies {
		if v == code {
			return true
		}
	}
	return false
}
