package repos_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/repos/testutil"
)

func TestShoppingListGetOrCreateIdempotent(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := repos.NewShoppingListRepo(gdb, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "cart-idem@example.com")
	recipe := testutil.SeedRecipe(t, ctx, tx, user.ID, "pancakes")

	first, created, err := repo.GetOrCreate(ctx, tx, user.ID, recipe.ID)
	if err != nil {
		t.Fatalf("first GetOrCreate: %v", err)
	}
	if !created {
		t.Fatal("expected first call to create the entry")
	}

	second, created, err := repo.GetOrCreate(ctx, tx, user.ID, recipe.ID)
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if created {
		t.Fatal("expected second call to find the existing entry")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same entry, got %s and %s", first.ID, second.ID)
	}

	entries, err := repo.GetByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestShoppingListDelete(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := repos.NewShoppingListRepo(gdb, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "cart-del@example.com")
	recipe := testutil.SeedRecipe(t, ctx, tx, user.ID, "bread")
	testutil.SeedShoppingListEntry(t, ctx, tx, user.ID, recipe.ID)

	if err := repo.Delete(ctx, tx, user.ID, recipe.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	entries, err := repo.GetByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty list after delete, got %d entries", len(entries))
	}

	err = repo.Delete(ctx, tx, user.ID, recipe.ID)
	if !errors.Is(err, repos.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound on second delete, got %v", err)
	}
}

func TestShoppingListDeleteUnknownRecipe(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := repos.NewShoppingListRepo(gdb, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "cart-unknown@example.com")

	err := repo.Delete(ctx, tx, user.ID, uuid.New())
	if !errors.Is(err, repos.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestShoppingListScopedPerUser(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := repos.NewShoppingListRepo(gdb, testutil.Logger(t))

	alice := testutil.SeedUser(t, ctx, tx, "alice-scope@example.com")
	bob := testutil.SeedUser(t, ctx, tx, "bob-scope@example.com")
	recipe := testutil.SeedRecipe(t, ctx, tx, alice.ID, "soup")

	testutil.SeedShoppingListEntry(t, ctx, tx, alice.ID, recipe.ID)

	entries, err := repo.GetByUserID(ctx, tx, bob.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected bob's list to be empty, got %d entries", len(entries))
	}
}
