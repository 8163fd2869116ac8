package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

func TestProductRepositoryIntegration_DecreaseStock(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	products := NewProductRepository(store)

	now := time.Now().UTC().Truncate(time.Microsecond)
	if err := products.Add(domain.Product{
		ID:        "product-1",
		Name:      "keyboard",
		Price:     decimal.NewFromInt(10),
		Stock:     3,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("add product: %v", err)
	}

	if err := products.DecreaseStock("product-1", 3); err != nil {
		t.Fatalf("decrease stock: %v", err)
	}
	got, err := products.GetByID("product-1")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", got.Stock)
	}

	if err := products.DecreaseStock("product-1", 1); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if err := products.DecreaseStock("missing", 1); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepositoryIntegration_UniqueName(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	products := NewProductRepository(store)

	now := time.Now().UTC().Truncate(time.Microsecond)
	base := domain.Product{
		ID:        "product-1",
		Name:      "keyboard",
		Price:     decimal.NewFromInt(10),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := products.Add(base); err != nil {
		t.Fatalf("add product: %v", err)
	}

	dup := base
	dup.ID = "product-2"
	if err := products.Add(dup); !errors.Is(err, domain.ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}

	exists, err := products.ExistsByName("keyboard")
	if err != nil || !exists {
		t.Fatalf("expected keyboard to exist, got %v %v", exists, err)
	}
}

func TestProductRepositoryIntegration_AssignCategory(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	products := NewProductRepository(store)
	categories := NewCategoryRepository(store)

	now := time.Now().UTC().Truncate(time.Microsecond)
	if err := products.Add(domain.Product{
		ID: "product-1", Name: "keyboard", Price: decimal.NewFromInt(10),
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if err := categories.Add(domain.Category{ID: "category-1", Name: "peripherals"}); err != nil {
		t.Fatalf("add category: %v", err)
	}

	if err := products.AssignCategory("product-1", "category-1"); err != nil {
		t.Fatalf("assign category: %v", err)
	}

	got, err := products.GetByID("product-1")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.CategoryID == nil || *got.CategoryID != "category-1" {
		t.Fatalf("expected category-1 assigned, got %v", got.CategoryID)
	}
}

func TestCategoryRepositoryIntegration_DeleteDirectChildren(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	categories := NewCategoryRepository(store)

	rootID, childID, grandchildID := "category-1", "category-2", "category-3"
	if err := categories.Add(domain.Category{ID: rootID, Name: "root"}); err != nil {
		t.Fatalf("add root: %v", err)
	}
	if err := categories.Add(domain.Category{ID: childID, Name: "child", ParentID: &rootID}); err != nil {
		t.Fatalf("add child: %v", err)
	}
	if err := categories.Add(domain.Category{ID: grandchildID, Name: "grandchild", ParentID: &childID}); err != nil {
		t.Fatalf("add grandchild: %v", err)
	}

	if err := categories.Delete(rootID); err != nil {
		t.Fatalf("delete root: %v", err)
	}

	if _, err := categories.GetByID(childID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected child deleted, got %v", err)
	}

	// Внук выживает с висячим parent_id.
	grandchild, err := categories.GetByID(grandchildID)
	if err != nil {
		t.Fatalf("get grandchild: %v", err)
	}
	if grandchild.ParentID == nil || *grandchild.ParentID != childID {
		t.Fatalf("expected dangling parent_id %s, got %v", childID, grandchild.ParentID)
	}
}
