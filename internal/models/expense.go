package models

// Participant is a member of a group.
// Participants are owned by group management and are immutable once created.
type Participant struct {
	// ID is the opaque identifier for the participant.
	ID string `json:"id"`

	// Name is the display name shown in balances and debt descriptions.
	Name string `json:"name"`
}

// SplitShare ties a participant to a non-negative monetary amount within one
// expense. The same shape expresses both "this participant paid X" and "this
// participant owes X".
type SplitShare struct {
	ParticipantID string  `json:"participant_id"`
	Amount        float64 `json:"amount"`
}

// Expense represents one shared expense: who paid how much, and how the cost
// is split among the debtors.
//
// Payer shares and debtor shares are expected to each sum to Total within a
// small tolerance (0.01). That invariant is the caller's responsibility; the
// calculator tolerates violations and reports them as warnings.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to.
	GroupID string `json:"group_id,omitempty"`

	// Title is the human-readable name for the expense.
	Title string `json:"title"`

	// Date is the Unix timestamp of when the expense occurred.
	Date int64 `json:"date"`

	// Total is the declared total amount of the expense.
	Total float64 `json:"total"`

	// PaidBy lists who actually paid, and how much each payer contributed.
	PaidBy []SplitShare `json:"paid_by"`

	// SplitAmong lists who owes, and how much of the total each debtor owes.
	SplitAmong []SplitShare `json:"split_among"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at,omitempty"`
}

// Transaction is one settlement payment: From pays To.
//
// From always had a negative (owing) net balance and To a positive (owed) net
// balance when the transaction was produced. Under the default calculator
// policy Amount is a whole number of currency units.
type Transaction struct {
	FromID string  `json:"from_id"`
	ToID   string  `json:"to_id"`
	Amount float64 `json:"amount"`
}
