package service

import (
	"context"
	"errors"

	"github.com/corebank/finance-service/internal/apperr"
	"github.com/corebank/finance-service/internal/models"
	"github.com/corebank/finance-service/internal/repository"
	"github.com/sirupsen/logrus"
)

// defaultTransactionCurrency applies when a request omits the currency code.
const defaultTransactionCurrency = "VND"

// DebitCardTransactionService handles transaction intake and retrieval.
type DebitCardTransactionService struct {
	store repository.Store
	log   *logrus.Logger
}

// NewDebitCardTransactionService initializes a new transaction service
func NewDebitCardTransactionService(store repository.Store, log *logrus.Logger) *DebitCardTransactionService {
	return &DebitCardTransactionService{store: store, log: log}
}

// CreateTransactionInput carries a transaction creation request.
// DebitCardID is optional; when absent the principal's single live card is
// the target. FieldErrors holds transport-level decode failures, reported
// only after the card is resolved and authorized.
type CreateTransactionInput struct {
	DebitCardID  *int64
	Amount       *float64
	Type         string
	CurrencyCode string
	FieldErrors  map[string][]string
}

// List returns transactions on the principal's live cards.
func (s *DebitCardTransactionService) List(ctx context.Context, p Principal) ([]models.DebitCardTransaction, error) {
	return s.store.ListTransactionsByUser(ctx, p.ID)
}

// Get returns a single transaction. A transaction on another principal's
// card yields Forbidden; a missing transaction, or one whose card is
// tombstoned, yields NotFound.
func (s *DebitCardTransactionService) Get(ctx context.Context, p Principal, id int64) (*models.DebitCardTransaction, error) {
	txn, ownerID, err := s.store.FindTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("transaction not found")
		}
		return nil, err
	}
	if err := Authorize(p, ownerID); err != nil {
		return nil, err
	}
	return txn, nil
}

// Create validates and persists a transaction against the target card.
// Checks run in contract order: card resolution, ownership, activity, then
// field validation.
func (s *DebitCardTransactionService) Create(ctx context.Context, p Principal, in CreateTransactionInput) (*models.DebitCardTransaction, error) {
	txn := &models.DebitCardTransaction{}
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		card, err := s.resolveCard(ctx, tx, p, in.DebitCardID)
		if err != nil {
			return err
		}
		if err := Authorize(p, card.UserID); err != nil {
			return err
		}
		if !card.IsActive {
			return apperr.Forbidden("debit card is not active")
		}
		if err := validateTransactionFields(&in); err != nil {
			return err
		}

		txn.DebitCardID = card.ID
		txn.Amount = *in.Amount
		txn.Type = in.Type
		txn.CurrencyCode = in.CurrencyCode
		if txn.CurrencyCode == "" {
			txn.CurrencyCode = defaultTransactionCurrency
		}
		return tx.CreateDebitCardTransaction(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"card_id": txn.DebitCardID, "transaction_id": txn.ID}).Info("Transaction created")
	return txn, nil
}

// resolveCard locks and returns the target card: the explicitly requested
// one, or the principal's single live card when the request names none.
func (s *DebitCardTransactionService) resolveCard(ctx context.Context, tx repository.Store, p Principal, cardID *int64) (*models.DebitCard, error) {
	id := int64(0)
	if cardID != nil {
		id = *cardID
	} else {
		cards, err := tx.ListDebitCardsByUser(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if len(cards) != 1 {
			return nil, apperr.NotFound("debit card not found")
		}
		id = cards[0].ID
	}
	card, err := tx.FindDebitCardByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("debit card not found")
		}
		return nil, err
	}
	return card, nil
}

func validateTransactionFields(in *CreateTransactionInput) error {
	fields := in.FieldErrors
	if _, seen := fields["amount"]; !seen {
		if in.Amount == nil {
			fields = addFieldError(fields, "amount", "the amount field is required")
		} else if *in.Amount <= 0 {
			fields = addFieldError(fields, "amount", "the amount must be greater than 0")
		}
	}
	if in.Type == "" {
		fields = addFieldError(fields, "type", "the type field is required")
	} else if !models.ValidTransactionType(in.Type) {
		fields = addFieldError(fields, "type", "the selected type is invalid")
	}
	if in.CurrencyCode != "" && !models.ValidTransactionCurrency(in.CurrencyCode) {
		fields = addFieldError(fields, "currency_code", "the selected currency_code is invalid")
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}
