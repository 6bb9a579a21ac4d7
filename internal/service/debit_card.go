package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corebank/finance-service/internal/apperr"
	"github.com/corebank/finance-service/internal/models"
	"github.com/corebank/finance-service/internal/repository"
	"github.com/corebank/finance-service/internal/utils"
	"github.com/sirupsen/logrus"
)

// generateAttempts caps retries when a generated card number collides.
const generateAttempts = 5

// DebitCardService owns debit card business logic: creation with number
// validation, activation toggling and soft deletion.
type DebitCardService struct {
	store   repository.Store
	log     *logrus.Logger
	cardBIN string
}

// NewDebitCardService initializes a new debit card service
func NewDebitCardService(store repository.Store, log *logrus.Logger, cardBIN string) *DebitCardService {
	return &DebitCardService{store: store, log: log, cardBIN: cardBIN}
}

// CreateDebitCardInput carries a card creation request. Number is optional;
// when empty a unique 16-digit number is generated.
type CreateDebitCardInput struct {
	Type   string
	Number string
}

// UpdateDebitCardInput carries an activation toggle. FieldErrors holds
// transport-level decode failures, reported only after ownership is
// verified.
type UpdateDebitCardInput struct {
	IsActive    *bool
	FieldErrors map[string][]string
}

func addFieldError(m map[string][]string, field, msg string) map[string][]string {
	if m == nil {
		m = map[string][]string{}
	}
	m[field] = append(m[field], msg)
	return m
}

// List returns the principal's live debit cards.
func (s *DebitCardService) List(ctx context.Context, p Principal) ([]models.DebitCard, error) {
	return s.store.ListDebitCardsByUser(ctx, p.ID)
}

// Get returns a single card. A card owned by someone else yields Forbidden,
// a missing or tombstoned card yields NotFound.
func (s *DebitCardService) Get(ctx context.Context, p Principal, id int64) (*models.DebitCard, error) {
	card, err := s.store.FindDebitCardByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("debit card not found")
		}
		return nil, err
	}
	if err := Authorize(p, card.UserID); err != nil {
		return nil, err
	}
	return card, nil
}

// Create validates and persists a new debit card for the principal.
func (s *DebitCardService) Create(ctx context.Context, p Principal, in CreateDebitCardInput) (*models.DebitCard, error) {
	var fields map[string][]string
	if in.Type == "" {
		fields = addFieldError(fields, "type", "the type field is required")
	} else if !models.ValidCardType(in.Type) {
		fields = addFieldError(fields, "type", "the selected type is invalid")
	}
	if in.Number != "" && !utils.IsWellFormedCardNumber(in.Number) {
		fields = addFieldError(fields, "number", "the number must be 16 digits")
	}
	if fields != nil {
		return nil, apperr.Validation(fields)
	}

	card := &models.DebitCard{
		UserID:   p.ID,
		Type:     in.Type,
		IsActive: true,
	}

	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		number := in.Number
		if number != "" {
			taken, err := tx.CardNumberExists(ctx, number)
			if err != nil {
				return err
			}
			if taken {
				return apperr.FieldError("number", "the number has already been taken")
			}
		} else {
			var err error
			number, err = s.uniqueCardNumber(ctx, tx)
			if err != nil {
				return err
			}
		}
		card.Number = number
		if err := tx.CreateDebitCard(ctx, card); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperr.FieldError("number", "the number has already been taken")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": p.ID, "card_id": card.ID}).Info("Debit card created")
	return card, nil
}

// uniqueCardNumber generates a 16-digit number not held by any live card.
func (s *DebitCardService) uniqueCardNumber(ctx context.Context, tx repository.Store) (string, error) {
	for i := 0; i < generateAttempts; i++ {
		number, err := utils.GenerateCardNumber(s.cardBIN, utils.CardNumberLength)
		if err != nil {
			return "", err
		}
		taken, err := tx.CardNumberExists(ctx, number)
		if err != nil {
			return "", err
		}
		if !taken {
			return number, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique card number after %d attempts", generateAttempts)
}

// Update toggles the card's activation state. Ownership is checked before
// body validation, so a non-owner gets Forbidden even with a malformed
// payload. Re-applying the current state is a no-op success.
func (s *DebitCardService) Update(ctx context.Context, p Principal, id int64, in UpdateDebitCardInput) (*models.DebitCard, error) {
	var card *models.DebitCard
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		card, err = tx.FindDebitCardByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.NotFound("debit card not found")
			}
			return err
		}
		if err := Authorize(p, card.UserID); err != nil {
			return err
		}

		fields := in.FieldErrors
		if len(fields) == 0 && in.IsActive == nil {
			fields = addFieldError(nil, "is_active", "the is_active field is required")
		}
		if len(fields) > 0 {
			return apperr.Validation(fields)
		}

		target := CardInactive
		if *in.IsActive {
			target = CardActive
		}
		if err := ValidateTransition(card, target, 0); err != nil {
			return err
		}
		ApplyActivation(card, *in.IsActive, time.Now())
		return tx.UpdateDebitCardActivation(ctx, card)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"card_id": card.ID, "is_active": card.IsActive}).Info("Debit card updated")
	return card, nil
}

// Delete tombstones a card. A card with transactions cannot be deleted.
func (s *DebitCardService) Delete(ctx context.Context, p Principal, id int64) error {
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		card, err := tx.FindDebitCardByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.NotFound("debit card not found")
			}
			return err
		}
		if err := Authorize(p, card.UserID); err != nil {
			return err
		}
		count, err := tx.CountTransactionsByCard(ctx, card.ID)
		if err != nil {
			return err
		}
		if err := ValidateTransition(card, CardDeleted, count); err != nil {
			return err
		}
		return tx.SoftDeleteDebitCard(ctx, card.ID)
	})
	if err != nil {
		return err
	}

	s.log.WithField("card_id", id).Info("Debit card deleted")
	return nil
}
