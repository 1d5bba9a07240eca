package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/zaloga/internal/db"
	"github.com/erazemk/zaloga/internal/model"
)

func TestCategoryLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	dairy, err := CreateCategory(ctx, database, "Dairy")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if dairy.Status != model.CategoryStatusActive {
		t.Errorf("expected status 'active', got %q", dairy.Status)
	}
	CreateCategory(ctx, database, "Bakery")

	list, err := ListCategories(ctx, database)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Bakery" {
		t.Errorf("expected 2 categories ordered by name, got %+v", list)
	}

	ok, _ := CategoryExists(ctx, database, dairy.ID)
	if !ok {
		t.Error("expected category to exist")
	}

	if err := UpdateCategory(ctx, database, dairy.ID, "Milk", model.CategoryStatusInactive); err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	got, _ := GetCategory(ctx, database, dairy.ID)
	if got.Name != "Milk" || got.Status != model.CategoryStatusInactive {
		t.Errorf("unexpected category after update: %+v", got)
	}

	if err := DeleteCategory(ctx, database, dairy.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	ok, _ = CategoryExists(ctx, database, dairy.ID)
	if ok {
		t.Error("expected deleted category not to exist")
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	cat, _ := CreateCategory(ctx, database, "Frozen")
	item, _ := CreateInventoryItem(ctx, database, model.InventoryItem{
		Name:         "Peas",
		CategoryID:   &cat.ID,
		SellingPrice: "2",
	})

	if err := DeleteCategory(ctx, database, cat.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	ok, _ := CategoryExists(ctx, database, cat.ID)
	if !ok {
		t.Error("category in use must not be deleted")
	}

	// Deleted items no longer hold the category.
	if err := DeleteInventoryItem(ctx, database, item.ID); err != nil {
		t.Fatalf("DeleteInventoryItem: %v", err)
	}
	if err := DeleteCategory(ctx, database, cat.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if err := DeleteCategory(ctx, database, cat.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
	if err := UpdateCategory(ctx, database, cat.ID, "Ice", model.CategoryStatusActive); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound renaming a deleted category, got %v", err)
	}
}
