package models

// Settlement represents a payment between group members to clear debts.
// Unlike a Transaction (a suggestion produced by the calculator), a
// Settlement is a payment that actually happened and was recorded.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// GroupID is the group this settlement belongs to.
	GroupID string `json:"group_id"`

	// FromID is the participant who paid (debtor settling up).
	FromID string `json:"from_id"`

	// ToID is the participant who received payment (creditor being paid).
	ToID string `json:"to_id"`

	// Amount is the payment amount.
	Amount float64 `json:"amount"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `json:"created_at"`

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string `json:"created_by,omitempty"`

	// Note is an optional description for the settlement.
	Note string `json:"note,omitempty"`
}
