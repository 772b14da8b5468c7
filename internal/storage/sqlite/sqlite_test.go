package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sally0227/smart-split/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "smart-split-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStore_Groups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates IDs", func(t *testing.T) {
		group := &models.Group{
			Name: "Roommates",
			Members: []models.Participant{
				{Name: "Alice"},
				{Name: "Bob"},
			},
		}

		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		for _, m := range group.Members {
			if m.ID == "" {
				t.Errorf("Expected participant ID to be generated for %s", m.Name)
			}
		}
	})

	t.Run("GetGroup retrieves members", func(t *testing.T) {
		group := &models.Group{
			Name: "Ski Trip",
			Members: []models.Participant{
				{ID: "p1", Name: "Carol"},
				{ID: "p2", Name: "Dave"},
			},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		retrieved, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if retrieved.Name != "Ski Trip" {
			t.Errorf("Name = %s, want Ski Trip", retrieved.Name)
		}
		if len(retrieved.Members) != 2 {
			t.Fatalf("Members count = %d, want 2", len(retrieved.Members))
		}
		// Members come back ordered by name
		if retrieved.Members[0].Name != "Carol" || retrieved.Members[1].Name != "Dave" {
			t.Errorf("Members = %v, want Carol then Dave", retrieved.Members)
		}
	})

	t.Run("GetGroup returns error for nonexistent group", func(t *testing.T) {
		if _, err := store.GetGroup(ctx, "nonexistent-id"); err == nil {
			t.Error("Expected error for nonexistent group, got nil")
		}
	})

	t.Run("AddGroupMembers skips existing ids", func(t *testing.T) {
		group := &models.Group{
			Name:    "Lunch Crew",
			Members: []models.Participant{{ID: "p1", Name: "Carol"}},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		err := store.AddGroupMembers(ctx, group.ID, []models.Participant{
			{ID: "p1", Name: "Carol"},
			{ID: "p3", Name: "Erin"},
		})
		if err != nil {
			t.Fatalf("AddGroupMembers failed: %v", err)
		}

		retrieved, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(retrieved.Members) != 2 {
			t.Errorf("Members count = %d, want 2", len(retrieved.Members))
		}
	})

	t.Run("UpdateGroup replaces member list", func(t *testing.T) {
		group := &models.Group{
			Name:    "Old Name",
			Members: []models.Participant{{ID: "p1", Name: "Carol"}},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		group.Name = "New Name"
		group.Members = []models.Participant{{ID: "p9", Name: "Frank"}}
		if err := store.UpdateGroup(ctx, group); err != nil {
			t.Fatalf("UpdateGroup failed: %v", err)
		}

		retrieved, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if retrieved.Name != "New Name" {
			t.Errorf("Name = %s, want New Name", retrieved.Name)
		}
		if len(retrieved.Members) != 1 || retrieved.Members[0].ID != "p9" {
			t.Errorf("Members = %v, want only p9", retrieved.Members)
		}
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{
		Name: "Trip",
		Members: []models.Participant{
			{ID: "alice", Name: "Alice"},
			{ID: "bob", Name: "Bob"},
		},
	}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	t.Run("CreateExpense and GetExpense roundtrip shares", func(t *testing.T) {
		expense := &models.Expense{
			GroupID: group.ID,
			Title:   "Groceries",
			Total:   60,
			PaidBy:  []models.SplitShare{{ParticipantID: "alice", Amount: 60}},
			SplitAmong: []models.SplitShare{
				{ParticipantID: "alice", Amount: 30},
				{ParticipantID: "bob", Amount: 30},
			},
		}

		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("Expected expense ID to be generated")
		}
		if expense.Date == 0 {
			t.Error("Expected Date to default to creation time")
		}

		retrieved, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if retrieved.Title != "Groceries" || retrieved.Total != 60 {
			t.Errorf("Expense = %+v, want Groceries/60", retrieved)
		}
		if len(retrieved.PaidBy) != 1 || retrieved.PaidBy[0].Amount != 60 {
			t.Errorf("PaidBy = %v, want single 60 share", retrieved.PaidBy)
		}
		if len(retrieved.SplitAmong) != 2 {
			t.Errorf("SplitAmong = %v, want 2 shares", retrieved.SplitAmong)
		}
	})

	t.Run("UpdateExpense replaces shares", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:    group.ID,
			Title:      "Taxi",
			Total:      20,
			PaidBy:     []models.SplitShare{{ParticipantID: "bob", Amount: 20}},
			SplitAmong: []models.SplitShare{{ParticipantID: "alice", Amount: 20}},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expense.Total = 24
		expense.PaidBy = []models.SplitShare{{ParticipantID: "bob", Amount: 24}}
		expense.SplitAmong = []models.SplitShare{
			{ParticipantID: "alice", Amount: 12},
			{ParticipantID: "bob", Amount: 12},
		}
		if err := store.UpdateExpense(ctx, expense); err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}

		retrieved, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if retrieved.Total != 24 {
			t.Errorf("Total = %v, want 24", retrieved.Total)
		}
		if len(retrieved.SplitAmong) != 2 {
			t.Errorf("SplitAmong = %v, want 2 shares after update", retrieved.SplitAmong)
		}
	})

	t.Run("ListExpensesByGroup returns all", func(t *testing.T) {
		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 2 {
			t.Errorf("Expenses count = %d, want 2", len(expenses))
		}
	})

	t.Run("DeleteExpense removes it", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:    group.ID,
			Title:      "Coffee",
			Total:      5,
			PaidBy:     []models.SplitShare{{ParticipantID: "alice", Amount: 5}},
			SplitAmong: []models.SplitShare{{ParticipantID: "bob", Amount: 5}},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if _, err := store.GetExpense(ctx, expense.ID); err == nil {
			t.Error("Expected error fetching deleted expense")
		}
	})
}

func TestSQLiteStore_Settlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{
		Name: "Flat",
		Members: []models.Participant{
			{ID: "alice", Name: "Alice"},
			{ID: "bob", Name: "Bob"},
		},
	}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	settlement := &models.Settlement{
		GroupID: group.ID,
		FromID:  "bob",
		ToID:    "alice",
		Amount:  30,
		Note:    "venmo",
	}
	if err := store.CreateSettlement(ctx, settlement); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}
	if settlement.ID == "" {
		t.Error("Expected settlement ID to be generated")
	}

	settlements, err := store.ListSettlementsByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListSettlementsByGroup failed: %v", err)
	}
	if len(settlements) != 1 {
		t.Fatalf("Settlements count = %d, want 1", len(settlements))
	}
	if settlements[0].Note != "venmo" {
		t.Errorf("Note = %s, want venmo", settlements[0].Note)
	}

	if err := store.DeleteSettlement(ctx, settlement.ID); err != nil {
		t.Fatalf("DeleteSettlement failed: %v", err)
	}
	if err := store.DeleteSettlement(ctx, settlement.ID); err == nil {
		t.Error("Expected error deleting settlement twice")
	}
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Errorf("GetUserByEmail = %+v, want user %s", byEmail, user.ID)
	}

	missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown email, got %+v", missing)
	}
}
