// Package calculator computes net balances, minimal settlement transactions,
// and human-readable raw-debt breakdowns for a group of people sharing
// expenses unevenly.
//
// All functions are pure: they take expense and participant lists, return
// fresh values, hold no state, and perform no I/O. They may be called
// concurrently as long as the caller does not mutate the inputs mid-call.
package calculator

import "fmt"

// zeroTolerance is the band within which a balance counts as settled.
// It also absorbs floating-point drift from repeated addition.
const zeroTolerance = 0.01

// Policy names the calculator behaviors that are deliberate product choices
// rather than mathematical necessities. The zero value is NOT the default;
// use DefaultPolicy.
type Policy struct {
	// DropSubUnitRemainders rounds suggested transaction amounts to whole
	// currency units and suppresses transactions that round to zero. A
	// remainder below half a unit is silently discarded, which can leave a
	// participant with a small fractional balance and no matching
	// transaction. When false, transactions keep 2-decimal amounts.
	DropSubUnitRemainders bool

	// IgnoreUnknownParticipants drops expense shares that reference a
	// participant ID missing from the member list. When false, such shares
	// grow the balance sheet with a new entry instead. Either way the
	// unknown reference is reported as a Warning.
	IgnoreUnknownParticipants bool
}

// DefaultPolicy returns the historical behavior: whole-unit transactions and
// silently ignored unknown participants.
func DefaultPolicy() Policy {
	return Policy{
		DropSubUnitRemainders:     true,
		IgnoreUnknownParticipants: true,
	}
}

// Warning codes reported by the calculator.
const (
	// WarnUnknownParticipant: an expense share references a participant ID
	// that is not in the member list.
	WarnUnknownParticipant = "unknown_participant"

	// WarnUnbalancedExpenses: the balance sheet does not sum to zero, which
	// means payer totals and debtor totals disagree somewhere upstream.
	WarnUnbalancedExpenses = "unbalanced_expenses"
)

// Warning reports a data-integrity issue that the calculator absorbed
// instead of failing. Warnings indicate caller-side data bugs; the computed
// results are still well-defined.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}
