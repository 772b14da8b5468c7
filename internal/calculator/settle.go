package calculator

import (
	"math"
	"sort"

	"github.com/sally0227/smart-split/internal/models"
)

// remaining tracks one side of the matching: a participant and how much of
// their balance is left to settle.
type remaining struct {
	id     string
	amount float64
}

// MinimizeTransactions turns a balance sheet into an ordered list of
// payments that settles every balance, using the default policy.
func MinimizeTransactions(balances BalanceSheet) []models.Transaction {
	return MinimizeTransactionsWithPolicy(balances, DefaultPolicy())
}

// MinimizeTransactionsWithPolicy matches debtors against creditors greedily,
// largest imbalances first, so that applying the returned transactions
// returns every balance to (approximately) zero.
//
// The result is not a provably minimum transaction count in general (that
// objective is NP-hard); the greedy matching bounds the count at one less
// than the number of non-zero participants and is minimal in the common
// two-sided case.
//
// The returned list is empty exactly when every balance is within 0.01 of
// zero. Every transaction runs from a participant who owed money to one who
// was owed money at the moment of matching.
func MinimizeTransactionsWithPolicy(balances BalanceSheet, policy Policy) []models.Transaction {
	// Round to cents before classifying so accumulated float drift cannot
	// produce phantom debtors or creditors.
	var debtors, creditors []remaining
	for _, id := range balances.sortedIDs() {
		switch rounded := round2(balances[id]); {
		case rounded < -zeroTolerance:
			debtors = append(debtors, remaining{id: id, amount: rounded})
		case rounded > zeroTolerance:
			creditors = append(creditors, remaining{id: id, amount: rounded})
		}
	}

	// Most-negative debtor and largest creditor first. Ties break on ID so
	// repeated runs over the same sheet emit the same plan.
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].amount < debtors[j].amount
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].amount > creditors[j].amount
	})

	var txns []models.Transaction
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		settled := math.Min(-debtor.amount, creditor.amount)
		amount := round2(settled)

		if policy.DropSubUnitRemainders {
			// Whole currency units only; a transfer that rounds to zero is
			// suppressed and its remainder dropped.
			if units := math.Round(amount); units > 0 {
				txns = append(txns, models.Transaction{
					FromID: debtor.id,
					ToID:   creditor.id,
					Amount: units,
				})
			}
		} else if amount > 0 {
			txns = append(txns, models.Transaction{
				FromID: debtor.id,
				ToID:   creditor.id,
				Amount: amount,
			})
		}

		debtor.amount += settled
		creditor.amount -= settled
		if -debtor.amount <= zeroTolerance {
			i++
		}
		if creditor.amount <= zeroTolerance {
			j++
		}
	}

	// Leftover unmatched balance only occurs when the sheet does not sum to
	// zero; ComputeBalances reports that as a warning upstream.
	return txns
}

// round2 rounds to 2 decimal places (fixed-point cents).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
