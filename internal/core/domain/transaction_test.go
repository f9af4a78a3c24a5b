package domain_test

import (
	"testing"

	"github.com/centbook/centbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_BalanceEffects(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        map[string]string
	}{
		{
			name: "expense debits the origin account",
			transaction: domain.Transaction{
				OriginAccountID: "acc-1",
				TargetAccountID: "acc-1",
				Amount:          decimal.NewFromInt(150),
				Type:            domain.Expense,
			},
			want: map[string]string{"acc-1": "-150"},
		},
		{
			name: "income credits the origin account",
			transaction: domain.Transaction{
				OriginAccountID: "acc-1",
				TargetAccountID: "acc-1",
				Amount:          decimal.NewFromInt(50),
				Type:            domain.Income,
			},
			want: map[string]string{"acc-1": "50"},
		},
		{
			name: "transfer debits origin and credits target",
			transaction: domain.Transaction{
				OriginAccountID: "acc-1",
				TargetAccountID: "acc-2",
				Amount:          decimal.NewFromInt(300),
				Type:            domain.Transfer,
			},
			want: map[string]string{"acc-1": "-300", "acc-2": "300"},
		},
		{
			name: "transfer onto itself nets to zero",
			transaction: domain.Transaction{
				OriginAccountID: "acc-1",
				TargetAccountID: "acc-1",
				Amount:          decimal.NewFromInt(300),
				Type:            domain.Transfer,
			},
			want: map[string]string{"acc-1": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transaction.BalanceEffects()
			assert.Len(t, got, len(tt.want))
			for accountID, want := range tt.want {
				assert.True(t, got[accountID].Equal(decimal.RequireFromString(want)),
					"account %s: want %s, got %s", accountID, want, got[accountID])
			}
		})
	}
}

func TestTransaction_ReversalEffects_NegatesBalanceEffects(t *testing.T) {
	txn := domain.Transaction{
		OriginAccountID: "acc-1",
		TargetAccountID: "acc-2",
		Amount:          decimal.NewFromInt(275),
		Type:            domain.Transfer,
	}

	forward := txn.BalanceEffects()
	reverse := txn.ReversalEffects()

	assert.Len(t, reverse, len(forward))
	for accountID, delta := range forward {
		assert.True(t, reverse[accountID].Equal(delta.Neg()),
			"account %s: reversal %s should negate %s", accountID, reverse[accountID], delta)
	}
}

func TestTransaction_TransferZeroSum(t *testing.T) {
	txn := domain.Transaction{
		OriginAccountID: "acc-x",
		TargetAccountID: "acc-y",
		Amount:          decimal.NewFromInt(12345),
		Type:            domain.Transfer,
	}

	sum := decimal.Zero
	for _, delta := range txn.BalanceEffects() {
		sum = sum.Add(delta)
	}
	assert.True(t, sum.IsZero(), "transfer deltas must sum to zero, got %s", sum)
}
