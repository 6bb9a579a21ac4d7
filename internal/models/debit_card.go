package models

import "time"

// Debit card types accepted on creation.
const (
	CardTypeGPN        = "gpn"
	CardTypeVisa       = "visa"
	CardTypeMastercard = "mastercard"
)

// CardTypes enumerates the accepted card types.
var CardTypes = []string{CardTypeGPN, CardTypeVisa, CardTypeMastercard}

// DebitCard represents a customer's debit card
type DebitCard struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Type       string     `json:"type"`
	Number     string     `json:"number"`
	IsActive   bool       `json:"is_active"`
	DisabledAt *time.Time `json:"disabled_at,omitempty"`
	DeletedAt  *time.Time `json:"-"` // Soft-delete tombstone, not serialized
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsLive reports whether the card has not been tombstoned. Every read path
// must treat non-live cards as absent.
func (c *DebitCard) IsLive() bool {
	return c.DeletedAt == nil
}

// ValidCardType reports whether t is one of the accepted card types.
func ValidCardType(t string) bool {
	for _, v := range CardTypes {
		if v == t {
			return true
		}
	}
	return false
}
