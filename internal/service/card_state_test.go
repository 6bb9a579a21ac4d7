package service

import (
	"testing"
	"time"

	"github.com/corebank/finance-service/internal/apperr"
	"github.com/corebank/finance-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateOf(t *testing.T) {
	now := time.Now()

	assert.Equal(t, CardActive, StateOf(&models.DebitCard{IsActive: true}))
	assert.Equal(t, CardInactive, StateOf(&models.DebitCard{IsActive: false}))
	assert.Equal(t, CardDeleted, StateOf(&models.DebitCard{IsActive: true, DeletedAt: &now}))
}

func TestValidateTransition(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		card     *models.DebitCard
		target   CardState
		txnCount int64
		wantKind apperr.Kind
		wantErr  bool
	}{
		{name: "activate inactive", card: &models.DebitCard{}, target: CardActive},
		{name: "deactivate active", card: &models.DebitCard{IsActive: true}, target: CardInactive},
		{name: "activate active is a no-op", card: &models.DebitCard{IsActive: true}, target: CardActive},
		{name: "deactivate inactive is a no-op", card: &models.DebitCard{}, target: CardInactive},
		{name: "delete without transactions", card: &models.DebitCard{}, target: CardDeleted},
		{
			name: "delete with transactions", card: &models.DebitCard{}, target: CardDeleted,
			txnCount: 1, wantErr: true, wantKind: apperr.KindForbidden,
		},
		{
			name: "deleted card reads as absent", card: &models.DebitCard{DeletedAt: &now}, target: CardActive,
			wantErr: true, wantKind: apperr.KindNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.card, tt.target, tt.txnCount)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}

func TestApplyActivation(t *testing.T) {
	now := time.Now()

	t.Run("deactivating sets disabled timestamp", func(t *testing.T) {
		card := &models.DebitCard{IsActive: true}
		ApplyActivation(card, false, now)
		assert.False(t, card.IsActive)
		require.NotNil(t, card.DisabledAt)
		assert.Equal(t, now, *card.DisabledAt)
	})

	t.Run("activating clears disabled timestamp", func(t *testing.T) {
		earlier := now.Add(-time.Hour)
		card := &models.DebitCard{IsActive: false, DisabledAt: &earlier}
		ApplyActivation(card, true, now)
		assert.True(t, card.IsActive)
		assert.Nil(t, card.DisabledAt)
	})

	t.Run("re-activating an active card keeps disabled_at nil", func(t *testing.T) {
		card := &models.DebitCard{IsActive: true}
		ApplyActivation(card, true, now)
		assert.True(t, card.IsActive)
		assert.Nil(t, card.DisabledAt)
	})

	t.Run("re-deactivating keeps original disabled_at", func(t *testing.T) {
		earlier := now.Add(-time.Hour)
		card := &models.DebitCard{IsActive: false, DisabledAt: &earlier}
		ApplyActivation(card, false, now)
		assert.False(t, card.IsActive)
		require.NotNil(t, card.DisabledAt)
		assert.Equal(t, earlier, *card.DisabledAt)
	})
}

func TestAuthorize(t *testing.T) {
	p := Principal{ID: 7}

	assert.NoError(t, Authorize(p, 7))

	err := Authorize(p, 8)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}
