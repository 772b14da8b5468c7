package service

import "github.com/sally0227/smart-split/internal/models"

// Auth DTOs.

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a signed token plus the account it belongs to.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Group DTOs.

type CreateGroupRequest struct {
	Name    string               `json:"name"`
	Members []models.Participant `json:"members"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GroupResponse struct {
	Group *models.Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*models.Group `json:"groups"`
}

type UpdateGroupRequest struct {
	GroupID string               `json:"group_id"`
	Name    string               `json:"name"`
	Members []models.Participant `json:"members"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type DeleteGroupResponse struct{}

type AddGroupMembersRequest struct {
	GroupID string               `json:"group_id"`
	Members []models.Participant `json:"members"`
}

// Expense DTOs.

// CreateExpenseRequest records one expense. Either SplitAmong carries
// explicit debtor shares, or SplitEquallyAmong lists participant IDs and the
// server divides Total equally between them (remainder cents go to the first
// debtor so the shares still sum to Total).
type CreateExpenseRequest struct {
	GroupID           string              `json:"group_id"`
	Title             string              `json:"title"`
	Date              int64               `json:"date,omitempty"`
	Total             float64             `json:"total"`
	PaidBy            []models.SplitShare `json:"paid_by"`
	SplitAmong        []models.SplitShare `json:"split_among,omitempty"`
	SplitEquallyAmong []string            `json:"split_equally_among,omitempty"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type ExpenseResponse struct {
	Expense *models.Expense `json:"expense"`
}

type ListExpensesRequest struct {
	GroupID string `json:"group_id"`
}

type ListExpensesResponse struct {
	Expenses []*models.Expense `json:"expenses"`
}

type UpdateExpenseRequest struct {
	ExpenseID         string              `json:"expense_id"`
	Title             string              `json:"title"`
	Date              int64               `json:"date,omitempty"`
	Total             float64             `json:"total"`
	PaidBy            []models.SplitShare `json:"paid_by"`
	SplitAmong        []models.SplitShare `json:"split_among,omitempty"`
	SplitEquallyAmong []string            `json:"split_equally_among,omitempty"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

// Settlement DTOs.

type ComputeSettlementRequest struct {
	GroupID string `json:"group_id"`
}

// MemberBalance is one row of the balance overview.
type MemberBalance struct {
	ParticipantID string  `json:"participant_id"`
	Name          string  `json:"name"`
	NetBalance    float64 `json:"net_balance"` // positive = owed money
	TotalPaid     float64 `json:"total_paid"`
	TotalOwed     float64 `json:"total_owed"`
}

// ComputeSettlementResponse is the full settlement picture for a group:
// balances, the suggested payment plan, and the pre-netting raw debt lines.
type ComputeSettlementResponse struct {
	Balances     []MemberBalance      `json:"balances"`
	Transactions []models.Transaction `json:"transactions"`
	RawDebts     []string             `json:"raw_debts"`
	Warnings     []string             `json:"warnings,omitempty"`
}

type RecordSettlementRequest struct {
	GroupID string  `json:"group_id"`
	FromID  string  `json:"from_id"`
	ToID    string  `json:"to_id"`
	Amount  float64 `json:"amount"`
	Note    string  `json:"note,omitempty"`
}

type RecordSettlementResponse struct {
	Settlement *models.Settlement `json:"settlement"`
}

type ListSettlementsRequest struct {
	GroupID string `json:"group_id"`
}

type ListSettlementsResponse struct {
	Settlements []*models.Settlement `json:"settlements"`
}

type DeleteSettlementRequest struct {
	SettlementID string `json:"settlement_id"`
}

type DeleteSettlementResponse struct{}
