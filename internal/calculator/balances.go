package calculator

import (
	"fmt"
	"math"
	"sort"

	"github.com/sally0227/smart-split/internal/models"
)

// BalanceSheet maps participant ID to signed net amount.
// Positive = net creditor (is owed money); negative = net debtor (owes
// money). Every known participant has an entry, zero-initialized, even if
// they appear in no expense.
type BalanceSheet map[string]float64

// Sum returns the total of all balances. For consistent input (payer totals
// equal debtor totals per expense) this is zero up to floating-point noise.
func (b BalanceSheet) Sum() float64 {
	var sum float64
	for _, v := range b {
		sum += v
	}
	return sum
}

// ComputeBalances folds a list of expenses into one net balance per member
// using the default policy.
func ComputeBalances(expenses []models.Expense, members []models.Participant) (BalanceSheet, []Warning) {
	return ComputeBalancesWithPolicy(expenses, members, DefaultPolicy())
}

// ComputeBalancesWithPolicy folds a list of expenses into one net balance per
// member. Each payer share adds to the payer's balance, each debtor share
// subtracts from the debtor's. Accumulation is full precision; no rounding
// happens here.
//
// Expense order does not affect the result. Malformed numeric input (NaN,
// Inf) propagates into the sheet rather than being rejected.
func ComputeBalancesWithPolicy(expenses []models.Expense, members []models.Participant, policy Policy) (BalanceSheet, []Warning) {
	balances := make(BalanceSheet, len(members))
	for _, m := range members {
		balances[m.ID] = 0
	}

	var warnings []Warning
	unknown := make(map[string]bool)

	apply := func(id string, amount float64) {
		if _, known := balances[id]; !known {
			if !unknown[id] {
				unknown[id] = true
				warnings = append(warnings, Warning{
					Code:    WarnUnknownParticipant,
					Message: fmt.Sprintf("expense share references unknown participant %q", id),
				})
			}
			if policy.IgnoreUnknownParticipants {
				return
			}
		}
		balances[id] += amount
	}

	for _, e := range expenses {
		for _, share := range e.PaidBy {
			apply(share.ParticipantID, share.Amount)
		}
		for _, share := range e.SplitAmong {
			apply(share.ParticipantID, -share.Amount)
		}
	}

	if sum := balances.Sum(); math.Abs(sum) > zeroTolerance {
		warnings = append(warnings, Warning{
			Code:    WarnUnbalancedExpenses,
			Message: fmt.Sprintf("balances sum to %.2f, expected 0: payer and debtor totals disagree", sum),
		})
	}

	return balances, warnings
}

// sortedIDs returns the sheet's participant IDs in lexical order, for
// deterministic iteration.
func (b BalanceSheet) sortedIDs() []string {
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
