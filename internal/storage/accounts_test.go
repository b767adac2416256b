package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/pulseledger/pulse/internal/common"
	"github.com/pulseledger/pulse/internal/model"
)

func TestSQLiteStorage_SaveAccount(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	acc := &model.Account{ID: "acc-1", Name: "Compte Courant", Type: model.AccountChecking}
	if err := store.SaveAccount(ctx, acc); err != nil {
		t.Fatalf("SaveAccount() error = %v", err)
	}

	// Same ID updates in place.
	acc.Type = model.AccountSavings
	if err := store.SaveAccount(ctx, acc); err != nil {
		t.Fatalf("SaveAccount() update error = %v", err)
	}

	got, err := store.GetAccountByName(ctx, "Compte Courant")
	if err != nil {
		t.Fatalf("GetAccountByName() error = %v", err)
	}
	if got == nil || got.Type != model.AccountSavings {
		t.Errorf("GetAccountByName() = %+v, want savings account", got)
	}
}

func TestSQLiteStorage_SaveAccount_DuplicateName(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveAccount(ctx, &model.Account{ID: "acc-1", Name: "Compte Courant", Type: model.AccountChecking}); err != nil {
		t.Fatalf("SaveAccount() error = %v", err)
	}

	err := store.SaveAccount(ctx, &model.Account{ID: "acc-2", Name: "Compte Courant", Type: model.AccountCash})
	if !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("SaveAccount() error = %v, want ErrDuplicateEntry", err)
	}
}

func TestSQLiteStorage_GetAccountByName_Missing(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	got, err := store.GetAccountByName(context.Background(), "Inconnu")
	if err != nil {
		t.Fatalf("GetAccountByName() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetAccountByName() = %+v, want nil", got)
	}
}

func TestSQLiteStorage_GetAccounts_Ordering(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for _, acc := range []model.Account{
		{ID: "acc-1", Name: "Zèbre", Type: model.AccountCash},
		{ID: "acc-2", Name: "Avoine", Type: model.AccountChecking},
	} {
		if err := store.SaveAccount(ctx, &acc); err != nil {
			t.Fatalf("SaveAccount() error = %v", err)
		}
	}

	accounts, err := store.GetAccounts(ctx)
	if err != nil {
		t.Fatalf("GetAccounts() error = %v", err)
	}
	if len(accounts) != 2 || accounts[0].Name != "Avoine" {
		t.Errorf("GetAccounts() = %+v, want name-ordered list", accounts)
	}
}

func TestSQLiteStorage_DeleteAccount(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveAccount(ctx, &model.Account{ID: "acc-1", Name: "Compte Courant", Type: model.AccountChecking}); err != nil {
		t.Fatalf("SaveAccount() error = %v", err)
	}

	if err := store.DeleteAccount(ctx, "acc-1"); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}
	if err := store.DeleteAccount(ctx, "acc-1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Second DeleteAccount() error = %v, want ErrNotFound", err)
	}
}
