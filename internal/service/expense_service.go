package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"connectrpc.com/connect"

	"github.com/sally0227/smart-split/internal/middleware"
	"github.com/sally0227/smart-split/internal/models"
	"github.com/sally0227/smart-split/internal/storage"
)

// ExpenseService implements the expense management RPCs.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// equalShares divides total across the given participant IDs in cents.
// Remainder cents go to the first debtor so the shares sum exactly to total.
func equalShares(total float64, ids []string) []models.SplitShare {
	cents := int64(math.Round(total * 100))
	base := cents / int64(len(ids))
	remainder := cents - base*int64(len(ids))

	shares := make([]models.SplitShare, len(ids))
	for i, id := range ids {
		c := base
		if i == 0 {
			c += remainder
		}
		shares[i] = models.SplitShare{ParticipantID: id, Amount: float64(c) / 100}
	}
	return shares
}

// buildSplitAmong resolves the debtor shares from a request: explicit shares
// win, otherwise the total is split equally.
func buildSplitAmong(total float64, explicit []models.SplitShare, equallyAmong []string) ([]models.SplitShare, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	if len(equallyAmong) > 0 {
		return equalShares(total, equallyAmong), nil
	}
	return nil, fmt.Errorf("either split_among or split_equally_among required")
}

// validateExpense checks the structural requirements. Share totals that
// disagree with the declared total are accepted (the calculator reports them
// as warnings) but logged here for visibility.
func validateExpense(expense *models.Expense) error {
	if len(expense.PaidBy) == 0 {
		return fmt.Errorf("at least one payer required")
	}
	if len(expense.SplitAmong) == 0 {
		return fmt.Errorf("at least one debtor required")
	}
	for _, share := range append(expense.PaidBy, expense.SplitAmong...) {
		if share.ParticipantID == "" {
			return fmt.Errorf("share participant_id required")
		}
		if share.Amount < 0 {
			return fmt.Errorf("share amount must be non-negative")
		}
	}

	var paid, owed float64
	for _, share := range expense.PaidBy {
		paid += share.Amount
	}
	for _, share := range expense.SplitAmong {
		owed += share.Amount
	}
	if math.Abs(paid-expense.Total) > 0.01 || math.Abs(owed-expense.Total) > 0.01 {
		slog.Warn("Expense share totals disagree with declared total",
			"title", expense.Title,
			"total", expense.Total,
			"paid", paid,
			"owed", owed,
		)
	}
	return nil
}

// autoAddParticipants adds any share participants not already in the group.
// Display names default to the participant ID until group management renames
// them.
func (s *ExpenseService) autoAddParticipants(ctx context.Context, expense *models.Expense) {
	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		slog.Warn("autoAddParticipants: failed to get group", "group_id", expense.GroupID, "error", err)
		return
	}

	known := make(map[string]bool, len(group.Members))
	for _, m := range group.Members {
		known[m.ID] = true
	}

	var missing []models.Participant
	seen := make(map[string]bool)
	for _, share := range append(expense.PaidBy, expense.SplitAmong...) {
		id := share.ParticipantID
		if known[id] || seen[id] {
			continue
		}
		seen[id] = true
		missing = append(missing, models.Participant{ID: id, Name: id})
	}
	if len(missing) == 0 {
		return
	}

	if err := s.store.AddGroupMembers(ctx, expense.GroupID, missing); err != nil {
		slog.Error("autoAddParticipants: failed to add members", "group_id", expense.GroupID, "error", err)
		return
	}
	slog.Info("Auto-added expense participants to group", "group_id", expense.GroupID, "new_members", len(missing))
}

// CreateExpense records a new expense for a group.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[ExpenseResponse], error) {
	if userID := middleware.GetUserID(ctx); userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}
	if req.Msg.GroupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("group_id required"))
	}

	splitAmong, err := buildSplitAmong(req.Msg.Total, req.Msg.SplitAmong, req.Msg.SplitEquallyAmong)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	expense := &models.Expense{
		GroupID:    req.Msg.GroupID,
		Title:      req.Msg.Title,
		Date:       req.Msg.Date,
		Total:      req.Msg.Total,
		PaidBy:     req.Msg.PaidBy,
		SplitAmong: splitAmong,
	}
	if err := validateExpense(expense); err != nil {
		slog.Error("CreateExpense validation failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	// Verify the group exists before writing.
	if _, err := s.store.GetGroup(ctx, expense.GroupID); err != nil {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.autoAddParticipants(ctx, expense)

	slog.Info("Expense created", "expense_id", expense.ID, "group_id", expense.GroupID, "total", expense.Total)

	return connect.NewResponse(&ExpenseResponse{Expense: expense}), nil
}

// GetExpense retrieves an expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[GetExpenseRequest]) (*connect.Response[ExpenseResponse], error) {
	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		slog.Error("GetExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	return connect.NewResponse(&ExpenseResponse{Expense: expense}), nil
}

// ListExpenses retrieves all expenses for a group.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&ListExpensesResponse{Expenses: expenses}), nil
}

// UpdateExpense replaces an existing expense.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[ExpenseResponse], error) {
	if userID := middleware.GetUserID(ctx); userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}

	existing, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		slog.Error("UpdateExpense: failed to get existing expense", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	splitAmong, err := buildSplitAmong(req.Msg.Total, req.Msg.SplitAmong, req.Msg.SplitEquallyAmong)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	expense := &models.Expense{
		ID:         existing.ID,
		GroupID:    existing.GroupID,
		Title:      req.Msg.Title,
		Date:       req.Msg.Date,
		Total:      req.Msg.Total,
		PaidBy:     req.Msg.PaidBy,
		SplitAmong: splitAmong,
	}
	if expense.Date == 0 {
		expense.Date = existing.Date
	}
	if err := validateExpense(expense); err != nil {
		slog.Error("UpdateExpense validation failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "error", err)
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	s.autoAddParticipants(ctx, expense)

	return connect.NewResponse(&ExpenseResponse{Expense: expense}), nil
}

// DeleteExpense removes an expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	if userID := middleware.GetUserID(ctx); userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}
	if req.Msg.ExpenseID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("expense_id required"))
	}

	if err := s.store.DeleteExpense(ctx, req.Msg.ExpenseID); err != nil {
		slog.Error("DeleteExpense failed", "error", err)
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	return connect.NewResponse(&DeleteExpenseResponse{}), nil
}
