package storage

import (
	"context"
	"testing"
)

func TestSQLiteStorage_GetSettings_DefaultsWhenMissing(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	settings, err := store.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if settings.Currency != "EUR" || settings.Language != "fr" {
		t.Errorf("GetSettings() = %+v, want French EUR defaults", settings)
	}
}

func TestSQLiteStorage_UpdateSettings(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	settings, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}

	settings.Currency = "USD"
	settings.Theme = "dark"
	settings.PaydayDay = 28
	if err := store.UpdateSettings(ctx, settings); err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}

	got, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got.Currency != "USD" || got.Theme != "dark" || got.PaydayDay != 28 {
		t.Errorf("GetSettings() = %+v, want updated values", got)
	}
}

func TestSQLiteStorage_UpdateSettings_Invalid(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	settings, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}

	settings.Currency = "BTC"
	if err := store.UpdateSettings(ctx, settings); err == nil {
		t.Error("UpdateSettings() expected error for unsupported currency, got nil")
	}
}
