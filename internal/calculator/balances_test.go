package calculator

import (
	"math"
	"testing"

	"github.com/sally0227/smart-split/internal/models"
)

func members(names ...string) []models.Participant {
	ps := make([]models.Participant, len(names))
	for i, n := range names {
		ps[i] = models.Participant{ID: n, Name: n}
	}
	return ps
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name         string
		expenses     []models.Expense
		members      []models.Participant
		wantBalances map[string]float64
		wantWarnings []string // expected warning codes, in order
	}{
		{
			name: "one payer equal three-way split",
			expenses: []models.Expense{{
				Title: "Dinner",
				Total: 90,
				PaidBy: []models.SplitShare{
					{ParticipantID: "Alice", Amount: 90},
				},
				SplitAmong: []models.SplitShare{
					{ParticipantID: "Alice", Amount: 30},
					{ParticipantID: "Bob", Amount: 30},
					{ParticipantID: "Carol", Amount: 30},
				},
			}},
			members:      members("Alice", "Bob", "Carol"),
			wantBalances: map[string]float64{"Alice": 60, "Bob": -30, "Carol": -30},
		},
		{
			name: "payer is not a debtor",
			expenses: []models.Expense{{
				Title:  "Concert tickets",
				Total:  100,
				PaidBy: []models.SplitShare{{ParticipantID: "Alice", Amount: 100}},
				SplitAmong: []models.SplitShare{
					{ParticipantID: "Bob", Amount: 50},
					{ParticipantID: "Carol", Amount: 50},
				},
			}},
			members:      members("Alice", "Bob", "Carol"),
			wantBalances: map[string]float64{"Alice": 100, "Bob": -50, "Carol": -50},
		},
		{
			name:         "empty expense list yields all zeros",
			expenses:     nil,
			members:      members("Alice", "Bob"),
			wantBalances: map[string]float64{"Alice": 0, "Bob": 0},
		},
		{
			name: "multiple expenses accumulate",
			expenses: []models.Expense{
				{
					Total:      40,
					PaidBy:     []models.SplitShare{{ParticipantID: "Alice", Amount: 40}},
					SplitAmong: []models.SplitShare{{ParticipantID: "Alice", Amount: 20}, {ParticipantID: "Bob", Amount: 20}},
				},
				{
					Total:      10,
					PaidBy:     []models.SplitShare{{ParticipantID: "Bob", Amount: 10}},
					SplitAmong: []models.SplitShare{{ParticipantID: "Alice", Amount: 5}, {ParticipantID: "Bob", Amount: 5}},
				},
			},
			members:      members("Alice", "Bob"),
			wantBalances: map[string]float64{"Alice": 15, "Bob": -15},
		},
		{
			name: "unknown participant share dropped with warnings",
			expenses: []models.Expense{{
				Total:  50,
				PaidBy: []models.SplitShare{{ParticipantID: "Alice", Amount: 50}},
				SplitAmong: []models.SplitShare{
					{ParticipantID: "Alice", Amount: 25},
					{ParticipantID: "ghost", Amount: 25},
				},
			}},
			members:      members("Alice", "Bob"),
			wantBalances: map[string]float64{"Alice": 25, "Bob": 0},
			// Dropping ghost's share leaves the sheet unbalanced, so both
			// warnings fire.
			wantWarnings: []string{WarnUnknownParticipant, WarnUnbalancedExpenses},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, warnings := ComputeBalances(tt.expenses, tt.members)

			if len(balances) != len(tt.wantBalances) {
				t.Errorf("balance sheet has %d entries, want %d", len(balances), len(tt.wantBalances))
			}
			for id, want := range tt.wantBalances {
				got, ok := balances[id]
				if !ok {
					t.Errorf("missing balance entry for %s", id)
					continue
				}
				if math.Abs(got-want) > 0.001 {
					t.Errorf("balance[%s] = %v, want %v", id, got, want)
				}
			}

			var codes []string
			for _, w := range warnings {
				codes = append(codes, w.Code)
			}
			if len(codes) != len(tt.wantWarnings) {
				t.Fatalf("warnings = %v, want codes %v", warnings, tt.wantWarnings)
			}
			for i, code := range tt.wantWarnings {
				if codes[i] != code {
					t.Errorf("warning[%d] code = %s, want %s", i, codes[i], code)
				}
			}
		})
	}
}

func TestComputeBalances_ZeroSum(t *testing.T) {
	expenses := []models.Expense{
		{
			Total:  73.5,
			PaidBy: []models.SplitShare{{ParticipantID: "Alice", Amount: 50}, {ParticipantID: "Bob", Amount: 23.5}},
			SplitAmong: []models.SplitShare{
				{ParticipantID: "Alice", Amount: 24.5},
				{ParticipantID: "Bob", Amount: 24.5},
				{ParticipantID: "Carol", Amount: 24.5},
			},
		},
		{
			Total:      12.3,
			PaidBy:     []models.SplitShare{{ParticipantID: "Carol", Amount: 12.3}},
			SplitAmong: []models.SplitShare{{ParticipantID: "Alice", Amount: 6.15}, {ParticipantID: "Bob", Amount: 6.15}},
		},
	}

	balances, warnings := ComputeBalances(expenses, members("Alice", "Bob", "Carol"))
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if sum := balances.Sum(); math.Abs(sum) > 1e-9 {
		t.Errorf("balances sum to %v, want 0", sum)
	}
}

func TestComputeBalances_OrderIndependent(t *testing.T) {
	a := models.Expense{
		Total:      30,
		PaidBy:     []models.SplitShare{{ParticipantID: "Alice", Amount: 30}},
		SplitAmong: []models.SplitShare{{ParticipantID: "Bob", Amount: 30}},
	}
	b := models.Expense{
		Total:      18,
		PaidBy:     []models.SplitShare{{ParticipantID: "Bob", Amount: 18}},
		SplitAmong: []models.SplitShare{{ParticipantID: "Alice", Amount: 18}},
	}

	forward, _ := ComputeBalances([]models.Expense{a, b}, members("Alice", "Bob"))
	reverse, _ := ComputeBalances([]models.Expense{b, a}, members("Alice", "Bob"))

	for id := range forward {
		if forward[id] != reverse[id] {
			t.Errorf("balance[%s] depends on expense order: %v vs %v", id, forward[id], reverse[id])
		}
	}
}

func TestComputeBalancesWithPolicy_KeepUnknownParticipants(t *testing.T) {
	expenses := []models.Expense{{
		Total:      50,
		PaidBy:     []models.SplitShare{{ParticipantID: "Alice", Amount: 50}},
		SplitAmong: []models.SplitShare{{ParticipantID: "ghost", Amount: 50}},
	}}

	policy := DefaultPolicy()
	policy.IgnoreUnknownParticipants = false

	balances, warnings := ComputeBalancesWithPolicy(expenses, members("Alice"), policy)

	if got := balances["ghost"]; got != -50 {
		t.Errorf("ghost balance = %v, want -50", got)
	}
	// The sheet balances once the unknown share is kept, so only the
	// unknown-participant warning remains.
	if len(warnings) != 1 || warnings[0].Code != WarnUnknownParticipant {
		t.Errorf("warnings = %v, want single %s", warnings, WarnUnknownParticipant)
	}
}
