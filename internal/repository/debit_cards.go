package repository

import (
	"context"
	"fmt"

	"github.com/corebank/finance-service/internal/models"
)

const debitCardColumns = "id, user_id, type, number, is_active, disabled_at, deleted_at, created_at, updated_at"

func scanDebitCard(row interface{ Scan(...any) error }) (*models.DebitCard, error) {
	card := &models.DebitCard{}
	err := row.Scan(&card.ID, &card.UserID, &card.Type, &card.Number, &card.IsActive,
		&card.DisabledAt, &card.DeletedAt, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return card, nil
}

// CreateDebitCard creates a new debit card in the database
func (r *Repository) CreateDebitCard(ctx context.Context, card *models.DebitCard) error {
	query := `
		INSERT INTO finance.debit_cards (user_id, type, number, is_active, disabled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, card.UserID, card.Type, card.Number, card.IsActive, card.DisabledAt).
		Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		if err = translateErr(err); err == ErrDuplicate {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create debit card: %w", err)
	}
	return nil
}

// ListDebitCardsByUser returns the user's live debit cards.
func (r *Repository) ListDebitCardsByUser(ctx context.Context, userID int64) ([]models.DebitCard, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM finance.debit_cards
		WHERE user_id = $1 AND %s
		ORDER BY id`, debitCardColumns, liveCards)
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debit cards: %w", err)
	}
	defer rows.Close()

	cards := []models.DebitCard{}
	for rows.Next() {
		card, err := scanDebitCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debit card: %w", err)
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list debit cards: %w", err)
	}
	return cards, nil
}

// FindDebitCardByID retrieves a live debit card by identifier.
func (r *Repository) FindDebitCardByID(ctx context.Context, id int64) (*models.DebitCard, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM finance.debit_cards
		WHERE id = $1 AND %s`, debitCardColumns, liveCards)
	card, err := scanDebitCard(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err = translateErr(err); err == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find debit card: %w", err)
	}
	return card, nil
}

// FindDebitCardByIDForUpdate retrieves a live debit card and locks its row
// for the remainder of the enclosing transaction.
func (r *Repository) FindDebitCardByIDForUpdate(ctx context.Context, id int64) (*models.DebitCard, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM finance.debit_cards
		WHERE id = $1 AND %s
		FOR UPDATE`, debitCardColumns, liveCards)
	card, err := scanDebitCard(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err = translateErr(err); err == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find debit card: %w", err)
	}
	return card, nil
}

// UpdateDebitCardActivation persists the card's activation state.
func (r *Repository) UpdateDebitCardActivation(ctx context.Context, card *models.DebitCard) error {
	query := fmt.Sprintf(`
		UPDATE finance.debit_cards
		SET is_active = $2, disabled_at = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND %s
		RETURNING updated_at`, liveCards)
	err := r.db.QueryRowContext(ctx, query, card.ID, card.IsActive, card.DisabledAt).
		Scan(&card.UpdatedAt)
	if err != nil {
		if err = translateErr(err); err == ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update debit card: %w", err)
	}
	return nil
}

// SoftDeleteDebitCard tombstones a live debit card.
func (r *Repository) SoftDeleteDebitCard(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`
		UPDATE finance.debit_cards
		SET deleted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND %s`, liveCards)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete debit card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete debit card: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CardNumberExists reports whether a live card already holds the number.
func (r *Repository) CardNumberExists(ctx context.Context, number string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM finance.debit_cards
			WHERE number = $1 AND %s
		)`, liveCards)
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check card number: %w", err)
	}
	return exists, nil
}

// CountTransactionsByCard returns the number of transactions charged against
// the card.
func (r *Repository) CountTransactionsByCard(ctx context.Context, cardID int64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM finance.debit_card_transactions
		WHERE debit_card_id = $1`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, cardID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
