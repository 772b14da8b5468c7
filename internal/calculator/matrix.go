package calculator

import (
	"fmt"
	"math"
	"sort"

	"github.com/sally0227/smart-split/internal/models"
)

// DescribeDebts reconstructs the raw pairwise who-owes-whom picture before
// any netting across expenses, and returns one display string per pair of
// members with a non-zero net debt between them.
//
// Within one expense, each debtor's obligation is distributed across the
// payers in proportion to how much each payer contributed. A debtor who also
// paid does not owe themself. Opposite-direction debts between the same pair
// are consolidated, so at most one line per unordered pair is returned
// ("Bob owes Alice 30"). Amounts are rounded to whole currency units.
//
// The matrix is an internal aid for explanation only; callers get strings,
// not machine-parseable data.
func DescribeDebts(expenses []models.Expense, members []models.Participant) []string {
	return DescribeDebtsWithPolicy(expenses, members, DefaultPolicy())
}

// DescribeDebtsWithPolicy is DescribeDebts with explicit policy control.
// Shares referencing ids outside the member list are dropped under the
// default policy; with IgnoreUnknownParticipants false the matrix grows a row
// and column for each unknown id instead, displayed under the id itself.
func DescribeDebtsWithPolicy(expenses []models.Expense, members []models.Participant, policy Policy) []string {
	names := make(map[string]string, len(members))
	ids := make([]string, 0, len(members))
	for _, m := range members {
		if _, seen := names[m.ID]; seen {
			continue
		}
		names[m.ID] = m.Name
		ids = append(ids, m.ID)
	}
	if !policy.IgnoreUnknownParticipants {
		for _, e := range expenses {
			for _, share := range append(e.PaidBy, e.SplitAmong...) {
				id := share.ParticipantID
				if _, seen := names[id]; seen {
					continue
				}
				names[id] = id
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)

	// Dense member x member matrix: matrix[debtor][payer] = amount owed.
	matrix := make(map[string]map[string]float64, len(ids))
	for _, id := range ids {
		matrix[id] = make(map[string]float64, len(ids))
	}

	for _, e := range expenses {
		var totalPaid float64
		for _, payer := range e.PaidBy {
			totalPaid += payer.Amount
		}
		if totalPaid == 0 {
			// Nothing was paid, nothing to attribute (and no division by
			// zero below).
			continue
		}

		for _, debtor := range e.SplitAmong {
			row, known := matrix[debtor.ParticipantID]
			if !known {
				continue
			}
			for _, payer := range e.PaidBy {
				if payer.ParticipantID == debtor.ParticipantID {
					continue // no self-debt
				}
				if _, known := matrix[payer.ParticipantID]; !known {
					continue
				}
				row[payer.ParticipantID] += debtor.Amount * payer.Amount / totalPaid
			}
		}
	}

	// Visit each unordered pair exactly once; lexical ID order keeps the
	// output stable and prevents mirrored duplicate lines.
	var lines []string
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			net := matrix[a][b] - matrix[b][a]
			switch {
			case net > zeroTolerance:
				lines = append(lines, debtLine(names[a], names[b], net))
			case net < -zeroTolerance:
				lines = append(lines, debtLine(names[b], names[a], -net))
			}
		}
	}
	return lines
}

func debtLine(debtor, creditor string, amount float64) string {
	return fmt.Sprintf("%s owes %s %d", debtor, creditor, int64(math.Round(amount)))
}
