package storage

import (
	"context"
	"testing"
	"time"

	"github.com/pulseledger/pulse/internal/model"
)

func TestSQLiteStorage_Budgets(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	budgets := []model.Budget{
		{ID: "b1", Category: "Alimentation", Month: "2026-03", Amount: 400},
		{ID: "b2", Category: "Transport", Month: "2026-03", Amount: 150},
		{ID: "b3", Category: "Alimentation", Month: "2026-04", Amount: 420},
	}
	for i := range budgets {
		if err := store.SaveBudget(ctx, &budgets[i]); err != nil {
			t.Fatalf("SaveBudget() error = %v", err)
		}
	}

	march, err := store.GetBudgets(ctx, "2026-03")
	if err != nil {
		t.Fatalf("GetBudgets() error = %v", err)
	}
	if len(march) != 2 {
		t.Errorf("Got %d budgets for 2026-03, want 2", len(march))
	}

	all, err := store.GetBudgets(ctx, "")
	if err != nil {
		t.Fatalf("GetBudgets(all) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Got %d budgets total, want 3", len(all))
	}

	// Same ID updates in place.
	budgets[0].Amount = 450
	if err := store.SaveBudget(ctx, &budgets[0]); err != nil {
		t.Fatalf("SaveBudget() update error = %v", err)
	}
	march, err = store.GetBudgets(ctx, "2026-03")
	if err != nil {
		t.Fatalf("GetBudgets() error = %v", err)
	}
	if march[0].Amount != 450 {
		t.Errorf("Amount = %v, want 450", march[0].Amount)
	}
}

func TestSQLiteStorage_SaveBudget_Invalid(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		budget *model.Budget
		name   string
	}{
		{name: "bad month form", budget: &model.Budget{ID: "b1", Category: "Transport", Month: "mars 2026", Amount: 100}},
		{name: "zero amount", budget: &model.Budget{ID: "b1", Category: "Transport", Month: "2026-03", Amount: 0}},
		{name: "missing category", budget: &model.Budget{ID: "b1", Month: "2026-03", Amount: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.SaveBudget(ctx, tt.budget); err == nil {
				t.Error("SaveBudget() expected error, got nil")
			}
		})
	}
}

func TestSQLiteStorage_Goals(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	goals := []model.Goal{
		{ID: "g1", Name: "Voiture", TargetAmount: 8000, Deadline: time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "g2", Name: "Vacances", TargetAmount: 1500, CurrentAmount: 600, Deadline: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	}
	for i := range goals {
		if err := store.SaveGoal(ctx, &goals[i]); err != nil {
			t.Fatalf("SaveGoal() error = %v", err)
		}
	}

	got, err := store.GetGoals(ctx)
	if err != nil {
		t.Fatalf("GetGoals() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Got %d goals, want 2", len(got))
	}
	// Ordered by deadline: Vacances first.
	if got[0].Name != "Vacances" {
		t.Errorf("First goal = %q, want Vacances", got[0].Name)
	}

	if err := store.DeleteGoal(ctx, "g1"); err != nil {
		t.Fatalf("DeleteGoal() error = %v", err)
	}
	got, err = store.GetGoals(ctx)
	if err != nil {
		t.Fatalf("GetGoals() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Got %d goals after delete, want 1", len(got))
	}
}
