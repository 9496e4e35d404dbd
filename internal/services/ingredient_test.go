package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/repos/testutil"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ingredients.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestImportCSV(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewIngredientRepo(gdb, log)
	service := NewIngredientService(gdb, log, repo)

	path := writeCSV(t, "абрикосовое варенье,г\nабрикосовое пюре,г\n")

	count, err := service.ImportCSV(ctx, path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 imported rows, got %d", count)
	}

	got, err := service.List(ctx, repos.IngredientFilter{NameStarts: "абрикос"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 catalog rows, got %d", len(got))
	}

	// Re-importing the same file must not fail, duplicate rows, or report
	// skipped rows as imported.
	count, err = service.ImportCSV(ctx, path)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 imported rows on re-import, got %d", count)
	}
	got, err = service.List(ctx, repos.IngredientFilter{NameStarts: "абрикос"})
	if err != nil {
		t.Fatalf("list after re-import: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 catalog rows after re-import, got %d", len(got))
	}
}

func TestImportCSVMalformedRow(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	service := NewIngredientService(gdb, log, repos.NewIngredientRepo(gdb, log))

	path := writeCSV(t, "мука,г\nсоль,г,лишнее поле\n")

	if _, err := service.ImportCSV(ctx, path); err == nil {
		t.Fatal("expected error for malformed csv row")
	}
}

func TestImportCSVMissingFile(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	service := NewIngredientService(gdb, log, repos.NewIngredientRepo(gdb, log))

	if _, err := service.ImportCSV(ctx, filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
