package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"connectrpc.com/connect"

	"github.com/sally0227/smart-split/internal/calculator"
	"github.com/sally0227/smart-split/internal/metrics"
	"github.com/sally0227/smart-split/internal/middleware"
	"github.com/sally0227/smart-split/internal/models"
	"github.com/sally0227/smart-split/internal/storage"
)

// SettlementService implements the settlement RPCs: computing a payment plan
// for a group and archiving payments that were actually made.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// ComputeSettlement loads a group's expenses and recorded settlements, runs
// the calculator, and returns balances, the suggested transactions, and the
// raw pairwise debt breakdown.
func (s *SettlementService) ComputeSettlement(ctx context.Context, req *connect.Request[ComputeSettlementRequest]) (*connect.Response[ComputeSettlementResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("ComputeSettlement request received", "group_id", groupID)

	if groupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("group_id required"))
	}

	start := time.Now()

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		metrics.SettlementComputations.WithLabelValues("error").Inc()
		slog.Error("ComputeSettlement failed - group not found", "group_id", groupID, "error", err)
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("group not found"))
	}

	stored, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		metrics.SettlementComputations.WithLabelValues("error").Inc()
		slog.Error("ComputeSettlement failed - could not list expenses", "group_id", groupID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	expenses := make([]models.Expense, len(stored))
	for i, e := range stored {
		expenses[i] = *e
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		metrics.SettlementComputations.WithLabelValues("error").Inc()
		slog.Error("ComputeSettlement failed - could not list settlements", "group_id", groupID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	balances, warnings := calculator.ComputeBalances(expenses, group.Members)
	applySettlements(balances, settlements)

	transactions := calculator.MinimizeTransactions(balances)
	rawDebts := calculator.DescribeDebts(expenses, group.Members)

	metrics.SettlementComputations.WithLabelValues("ok").Inc()
	metrics.SettlementTransactions.Observe(float64(len(transactions)))
	metrics.SettlementDuration.Observe(time.Since(start).Seconds())
	for _, w := range warnings {
		metrics.InvariantWarnings.WithLabelValues(w.Code).Inc()
		slog.Warn("Calculator warning", "group_id", groupID, "code", w.Code, "message", w.Message)
	}

	resp := &ComputeSettlementResponse{
		Balances:     memberBalances(balances, group.Members, expenses, settlements),
		Transactions: transactions,
		RawDebts:     rawDebts,
	}
	for _, w := range warnings {
		resp.Warnings = append(resp.Warnings, w.String())
	}

	slog.Info("ComputeSettlement successful",
		"group_id", groupID,
		"expenses_count", len(expenses),
		"members_count", len(group.Members),
		"transactions_count", len(transactions),
	)

	return connect.NewResponse(resp), nil
}

// RecordSettlement archives a payment that actually happened. Recorded
// settlements reduce the payer's debt in subsequent computations.
func (s *SettlementService) RecordSettlement(ctx context.Context, req *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}

	msg := req.Msg
	if msg.GroupID == "" || msg.FromID == "" || msg.ToID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("group_id, from_id and to_id required"))
	}
	if msg.FromID == msg.ToID {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("cannot settle with yourself"))
	}
	if msg.Amount <= 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("amount must be positive"))
	}

	if _, err := s.store.GetGroup(ctx, msg.GroupID); err != nil {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	settlement := &models.Settlement{
		GroupID:   msg.GroupID,
		FromID:    msg.FromID,
		ToID:      msg.ToID,
		Amount:    msg.Amount,
		CreatedBy: userID,
		Note:      msg.Note,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"group_id", settlement.GroupID,
		"from", settlement.FromID,
		"to", settlement.ToID,
		"amount", settlement.Amount,
	)

	return connect.NewResponse(&RecordSettlementResponse{Settlement: settlement}), nil
}

// ListSettlements retrieves the recorded settlements for a group.
func (s *SettlementService) ListSettlements(ctx context.Context, req *connect.Request[ListSettlementsRequest]) (*connect.Response[ListSettlementsResponse], error) {
	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("ListSettlements failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&ListSettlementsResponse{Settlements: settlements}), nil
}

// DeleteSettlement removes a recorded settlement, restoring the debt it had
// cleared.
func (s *SettlementService) DeleteSettlement(ctx context.Context, req *connect.Request[DeleteSettlementRequest]) (*connect.Response[DeleteSettlementResponse], error) {
	if userID := middleware.GetUserID(ctx); userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}
	if req.Msg.SettlementID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("settlement_id required"))
	}

	if err := s.store.DeleteSettlement(ctx, req.Msg.SettlementID); err != nil {
		slog.Error("DeleteSettlement failed", "error", err)
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	return connect.NewResponse(&DeleteSettlementResponse{}), nil
}

// applySettlements folds recorded payments into the balance sheet: the payer
// recovers, the receiver's credit shrinks. Ids outside the sheet are skipped
// the same way the calculator skips unknown participants.
func applySettlements(balances calculator.BalanceSheet, settlements []*models.Settlement) {
	for _, st := range settlements {
		if _, ok := balances[st.FromID]; !ok {
			continue
		}
		if _, ok := balances[st.ToID]; !ok {
			continue
		}
		balances[st.FromID] += st.Amount
		balances[st.ToID] -= st.Amount
	}
}

// memberBalances builds the per-member overview rows: net balance plus the
// paid/owed totals it nets out from. Rows hold the invariant
// TotalPaid - TotalOwed == NetBalance, so anything applySettlements skipped
// must be skipped here too.
func memberBalances(balances calculator.BalanceSheet, members []models.Participant, expenses []models.Expense, settlements []*models.Settlement) []MemberBalance {
	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.ID] = true
	}

	paid := make(map[string]float64, len(members))
	owed := make(map[string]float64, len(members))
	for _, e := range expenses {
		for _, share := range e.PaidBy {
			paid[share.ParticipantID] += share.Amount
		}
		for _, share := range e.SplitAmong {
			owed[share.ParticipantID] += share.Amount
		}
	}
	for _, st := range settlements {
		if !known[st.FromID] || !known[st.ToID] {
			continue
		}
		paid[st.FromID] += st.Amount
		owed[st.ToID] += st.Amount
	}

	rows := make([]MemberBalance, 0, len(members))
	for _, m := range members {
		rows = append(rows, MemberBalance{
			ParticipantID: m.ID,
			Name:          m.Name,
			NetBalance:    balances[m.ID],
			TotalPaid:     paid[m.ID],
			TotalOwed:     owed[m.ID],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}
