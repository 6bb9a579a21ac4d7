package repository

import (
	"context"
	"fmt"

	"github.com/corebank/finance-service/internal/models"
)

// CreateDebitCardTransaction creates a new debit card transaction
func (r *Repository) CreateDebitCardTransaction(ctx context.Context, txn *models.DebitCardTransaction) error {
	query := `
		INSERT INTO finance.debit_card_transactions (debit_card_id, amount, currency_code, type, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, txn.DebitCardID, txn.Amount, txn.CurrencyCode, txn.Type).
		Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactionsByUser returns transactions on the user's live cards.
func (r *Repository) ListTransactionsByUser(ctx context.Context, userID int64) ([]models.DebitCardTransaction, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.debit_card_id, t.amount, t.currency_code, t.type, t.created_at
		FROM finance.debit_card_transactions t
		JOIN finance.debit_cards c ON c.id = t.debit_card_id
		WHERE c.user_id = $1 AND c.%s
		ORDER BY t.id`, liveCards)
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := []models.DebitCardTransaction{}
	for rows.Next() {
		var txn models.DebitCardTransaction
		if err := rows.Scan(&txn.ID, &txn.DebitCardID, &txn.Amount, &txn.CurrencyCode, &txn.Type, &txn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// FindTransactionByID retrieves a transaction whose card is still live,
// together with the card owner's user id for authorization.
func (r *Repository) FindTransactionByID(ctx context.Context, id int64) (*models.DebitCardTransaction, int64, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.debit_card_id, t.amount, t.currency_code, t.type, t.created_at, c.user_id
		FROM finance.debit_card_transactions t
		JOIN finance.debit_cards c ON c.id = t.debit_card_id
		WHERE t.id = $1 AND c.%s`, liveCards)
	txn := &models.DebitCardTransaction{}
	var ownerID int64
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&txn.ID, &txn.DebitCardID, &txn.Amount, &txn.CurrencyCode, &txn.Type, &txn.CreatedAt, &ownerID)
	if err != nil {
		if err = translateErr(err); err == ErrNotFound {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("failed to find transaction: %w", err)
	}
	return txn, ownerID, nil
}
