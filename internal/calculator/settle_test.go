package calculator

import (
	"math"
	"testing"

	"github.com/sally0227/smart-split/internal/models"
)

func TestMinimizeTransactions(t *testing.T) {
	tests := []struct {
		name     string
		balances BalanceSheet
		want     []models.Transaction
	}{
		{
			name:     "two debtors one creditor",
			balances: BalanceSheet{"Alice": 60, "Bob": -30, "Carol": -30},
			want: []models.Transaction{
				{FromID: "Bob", ToID: "Alice", Amount: 30},
				{FromID: "Carol", ToID: "Alice", Amount: 30},
			},
		},
		{
			name:     "payer was not a debtor",
			balances: BalanceSheet{"Alice": 100, "Bob": -50, "Carol": -50},
			want: []models.Transaction{
				{FromID: "Bob", ToID: "Alice", Amount: 50},
				{FromID: "Carol", ToID: "Alice", Amount: 50},
			},
		},
		{
			name:     "one debtor two creditors",
			balances: BalanceSheet{"Alice": -100, "Bob": 60, "Carol": 40},
			want: []models.Transaction{
				{FromID: "Alice", ToID: "Bob", Amount: 60},
				{FromID: "Alice", ToID: "Carol", Amount: 40},
			},
		},
		{
			name:     "empty sheet",
			balances: BalanceSheet{},
			want:     nil,
		},
		{
			name:     "already settled",
			balances: BalanceSheet{"Alice": 0, "Bob": 0},
			want:     nil,
		},
		{
			name:     "drift within tolerance is settled",
			balances: BalanceSheet{"Alice": 0.004, "Bob": -0.004},
			want:     nil,
		},
		{
			name:     "sub-unit remainder below half a unit is dropped",
			balances: BalanceSheet{"Alice": 0.4, "Bob": -0.4},
			want:     nil,
		},
		{
			name:     "sub-unit remainder above half a unit rounds up",
			balances: BalanceSheet{"Alice": 0.6, "Bob": -0.6},
			want:     []models.Transaction{{FromID: "Bob", ToID: "Alice", Amount: 1}},
		},
		{
			name:     "fractional amounts round to whole units",
			balances: BalanceSheet{"Alice": 100.4, "Bob": -100.4},
			want:     []models.Transaction{{FromID: "Bob", ToID: "Alice", Amount: 100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinimizeTransactions(tt.balances)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d transactions %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for i, txn := range got {
				if txn != tt.want[i] {
					t.Errorf("transaction[%d] = %+v, want %+v", i, txn, tt.want[i])
				}
			}
		})
	}
}

func TestMinimizeTransactions_Completeness(t *testing.T) {
	balances := BalanceSheet{
		"Alice": 70,
		"Bob":   -30,
		"Carol": -25,
		"Dave":  -15,
	}

	txns := MinimizeTransactions(balances)

	// Replay the plan against a copy of the sheet.
	residual := make(BalanceSheet, len(balances))
	for id, v := range balances {
		residual[id] = v
	}
	for _, txn := range txns {
		if txn.FromID == txn.ToID {
			t.Errorf("self-payment: %+v", txn)
		}
		if txn.Amount <= 0 {
			t.Errorf("non-positive amount: %+v", txn)
		}
		if balances[txn.FromID] >= -zeroTolerance {
			t.Errorf("transaction from %s, who owed nothing", txn.FromID)
		}
		if balances[txn.ToID] <= zeroTolerance {
			t.Errorf("transaction to %s, who was owed nothing", txn.ToID)
		}
		residual[txn.FromID] += txn.Amount
		residual[txn.ToID] -= txn.Amount
	}

	// Whole-unit rounding bounds the leftover per participant at one unit.
	for id, v := range residual {
		if math.Abs(v) > 1 {
			t.Errorf("residual balance for %s = %v, want within 1 unit of 0", id, v)
		}
	}
}

func TestMinimizeTransactions_Deterministic(t *testing.T) {
	balances := BalanceSheet{"Alice": 50, "Bob": -25, "Carol": -25, "Dave": 0}

	first := MinimizeTransactions(balances)
	for range 10 {
		again := MinimizeTransactions(balances)
		if len(again) != len(first) {
			t.Fatalf("plan length changed between runs: %v vs %v", again, first)
		}
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("plan changed between runs: %v vs %v", again, first)
			}
		}
	}
}

func TestMinimizeTransactionsWithPolicy_KeepSubUnitAmounts(t *testing.T) {
	policy := DefaultPolicy()
	policy.DropSubUnitRemainders = false

	balances := BalanceSheet{"Alice": 100.4, "Bob": -100.4}
	txns := MinimizeTransactionsWithPolicy(balances, policy)

	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
	if txns[0].Amount != 100.4 {
		t.Errorf("amount = %v, want 100.4", txns[0].Amount)
	}

	// Below-tolerance noise stays suppressed even in exact mode.
	if got := MinimizeTransactionsWithPolicy(BalanceSheet{"Alice": 0.004, "Bob": -0.004}, policy); len(got) != 0 {
		t.Errorf("expected no transactions for settled sheet, got %v", got)
	}
}
