package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCardNumber(t *testing.T) {
	number, err := GenerateCardNumber("400000", CardNumberLength)
	require.NoError(t, err)
	assert.Len(t, number, CardNumberLength)
	assert.True(t, strings.HasPrefix(number, "400000"))
	assert.True(t, IsWellFormedCardNumber(number))
}

func TestGenerateCardNumberRejectsBadLength(t *testing.T) {
	_, err := GenerateCardNumber("400000", 4)
	assert.Error(t, err)

	_, err = GenerateCardNumber("400000", 20)
	assert.Error(t, err)
}

func TestIsWellFormedCardNumber(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"4000001234567890", true},
		{"400000123456789", false},
		{"40000012345678901", false},
		{"400000123456789x", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWellFormedCardNumber(tt.number), tt.number)
	}
}
