package service

import (
	"fmt"
	"time"

	"github.com/corebank/finance-service/internal/apperr"
	"github.com/corebank/finance-service/internal/models"
)

// CardState enumerates the lifecycle states of a debit card.
type CardState int

const (
	CardActive CardState = iota
	CardInactive
	CardDeleted
)

func (s CardState) String() string {
	switch s {
	case CardActive:
		return "active"
	case CardInactive:
		return "inactive"
	case CardDeleted:
		return "deleted"
	}
	return fmt.Sprintf("CardState(%d)", int(s))
}

// ErrHasDependentTransactions blocks deletion of a card that has
// transactions charged against it. It surfaces as 403.
var ErrHasDependentTransactions = apperr.Forbidden("cannot delete a debit card with transactions")

// StateOf derives the lifecycle state of a card.
func StateOf(card *models.DebitCard) CardState {
	switch {
	case !card.IsLive():
		return CardDeleted
	case card.IsActive:
		return CardActive
	default:
		return CardInactive
	}
}

// ValidateTransition checks whether the card may move to target, given the
// number of transactions currently charged against it. Activation toggles
// are allowed unconditionally, including the no-op direction; Deleted is
// terminal and a deleted card reads as absent.
func ValidateTransition(card *models.DebitCard, target CardState, transactionCount int64) error {
	if StateOf(card) == CardDeleted {
		return apperr.NotFound("debit card not found")
	}
	switch target {
	case CardActive, CardInactive:
		return nil
	case CardDeleted:
		if transactionCount > 0 {
			return ErrHasDependentTransactions
		}
		return nil
	}
	return fmt.Errorf("unknown card state: %v", target)
}

// ApplyActivation flips the activation flag, keeping the invariant that an
// active card has no disabled timestamp. Re-applying the current state
// leaves the disabled timestamp untouched.
func ApplyActivation(card *models.DebitCard, active bool, now time.Time) {
	if card.IsActive == active {
		return
	}
	card.IsActive = active
	if active {
		card.DisabledAt = nil
	} else {
		card.DisabledAt = &now
	}
}
