package service

import (
	"context"
	"testing"

	"github.com/corebank/finance-service/internal/apperr"
	"github.com/corebank/finance-service/internal/models"
	"github.com/corebank/finance-service/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTxnService(t *testing.T) (*DebitCardTransactionService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewDebitCardTransactionService(store, testLogger()), store
}

func amountOf(v float64) *float64 { return &v }

func TestTransactionCreateOnImplicitCard(t *testing.T) {
	svc, store := newTxnService(t)
	ctx := context.Background()
	card := seedCard(t, store, 1, "1234567890123456", true)

	txn, err := svc.Create(ctx, Principal{ID: 1}, CreateTransactionInput{
		Amount: amountOf(1000),
		Type:   models.TransactionTypeDebit,
	})
	require.NoError(t, err)
	assert.Equal(t, card.ID, txn.DebitCardID)
	assert.Equal(t, defaultTransactionCurrency, txn.CurrencyCode)
}

func TestTransactionCreateImplicitCardAmbiguous(t *testing.T) {
	svc, store := newTxnService(t)
	seedCard(t, store, 1, "1234567890123456", true)
	seedCard(t, store, 1, "1234567890123457", true)

	_, err := svc.Create(context.Background(), Principal{ID: 1}, CreateTransactionInput{
		Amount: amountOf(1000),
		Type:   models.TransactionTypeDebit,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestTransactionCreateOnInactiveCardIsForbidden(t *testing.T) {
	svc, store := newTxnService(t)
	ctx := context.Background()
	card := seedCard(t, store, 1, "1234567890123456", false)

	_, err := svc.Create(ctx, Principal{ID: 1}, CreateTransactionInput{
		DebitCardID: &card.ID,
		Amount:      amountOf(10000),
		Type:        models.TransactionTypePurchase,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	txns, err := store.ListTransactionsByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, txns, 0)
}

func TestTransactionCreateOnOtherCustomersCardIsForbidden(t *testing.T) {
	svc, store := newTxnService(t)
	card := seedCard(t, store, 2, "1234567890123456", true)

	_, err := svc.Create(context.Background(), Principal{ID: 1}, CreateTransactionInput{
		DebitCardID: &card.ID,
		Amount:      amountOf(1000),
		Type:        models.TransactionTypeDebit,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestTransactionCreateOnUnknownCardIsNotFound(t *testing.T) {
	svc, _ := newTxnService(t)
	unknown := int64(9999)

	_, err := svc.Create(context.Background(), Principal{ID: 1}, CreateTransactionInput{
		DebitCardID: &unknown,
		Amount:      amountOf(1000),
		Type:        models.TransactionTypeDebit,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestTransactionCreateValidatesFields(t *testing.T) {
	svc, store := newTxnService(t)
	seedCard(t, store, 1, "1234567890123456", true)
	p := Principal{ID: 1}

	tests := []struct {
		name      string
		input     CreateTransactionInput
		wantField string
	}{
		{
			name:      "missing amount",
			input:     CreateTransactionInput{Type: models.TransactionTypeDebit},
			wantField: "amount",
		},
		{
			name:      "non-positive amount",
			input:     CreateTransactionInput{Amount: amountOf(0), Type: models.TransactionTypeDebit},
			wantField: "amount",
		},
		{
			name:      "missing type",
			input:     CreateTransactionInput{Amount: amountOf(1000)},
			wantField: "type",
		},
		{
			name:      "unknown type",
			input:     CreateTransactionInput{Amount: amountOf(1000), Type: "teleport"},
			wantField: "type",
		},
		{
			name: "unknown currency",
			input: CreateTransactionInput{
				Amount: amountOf(1000), Type: models.TransactionTypeDebit, CurrencyCode: "XXX",
			},
			wantField: "currency_code",
		},
		{
			name: "decode-level field error is preserved",
			input: CreateTransactionInput{
				Type:        models.TransactionTypeDebit,
				FieldErrors: map[string][]string{"amount": {"the amount field is invalid"}},
			},
			wantField: "amount",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), p, tt.input)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Contains(t, apperr.FieldsOf(err), tt.wantField)
		})
	}
}

func TestTransactionGetDistinguishesForbiddenFromNotFound(t *testing.T) {
	svc, store := newTxnService(t)
	ctx := context.Background()
	card := seedCard(t, store, 2, "1234567890123456", true)
	txn := &models.DebitCardTransaction{DebitCardID: card.ID, Amount: 100, CurrencyCode: "VND", Type: models.TransactionTypeDebit}
	require.NoError(t, store.CreateDebitCardTransaction(ctx, txn))

	_, err := svc.Get(ctx, Principal{ID: 1}, txn.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.Get(ctx, Principal{ID: 1}, 9999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestTransactionGetOnTombstonedCardIsNotFound(t *testing.T) {
	svc, store := newTxnService(t)
	ctx := context.Background()
	card := seedCard(t, store, 1, "1234567890123456", true)
	txn := &models.DebitCardTransaction{DebitCardID: card.ID, Amount: 100, CurrencyCode: "VND", Type: models.TransactionTypeDebit}
	require.NoError(t, store.CreateDebitCardTransaction(ctx, txn))
	require.NoError(t, store.SoftDeleteDebitCard(ctx, card.ID))

	_, err := svc.Get(ctx, Principal{ID: 1}, txn.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
