package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// CardNumberLength is the required length of a debit card number.
const CardNumberLength = 16

// GenerateCardNumber generates a card number with the specified prefix and length
func GenerateCardNumber(prefix string, length int) (string, error) {
	if length < len(prefix) || length > 19 {
		return "", fmt.Errorf("invalid card number length: %d", length)
	}

	// Generate random digits
	digits := make([]byte, length-len(prefix))
	_, err := rand.Read(digits)
	if err != nil {
		return "", fmt.Errorf("failed to generate random digits: %w", err)
	}

	// Convert to string and ensure valid digits
	var builder strings.Builder
	builder.WriteString(prefix)
	for _, b := range digits {
		digit := b%10 + '0' // Convert to ASCII digit
		builder.WriteByte(digit)
	}

	cardNumber := builder.String()

	if len(cardNumber) != length {
		return "", fmt.Errorf("generated card number has incorrect length: got %d, want %d", len(cardNumber), length)
	}

	return cardNumber, nil
}

// IsWellFormedCardNumber reports whether number is exactly CardNumberLength
// ASCII digits.
func IsWellFormedCardNumber(number string) bool {
	if len(number) != CardNumberLength {
		return false
	}
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return false
		}
	}
	return true
}
