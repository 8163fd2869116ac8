package domain_test

import (
	"testing"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

func strptr(s string) *string { return &s }

func TestBuildCategoryTree(t *testing.T) {
	categories := []domain.Category{
		{ID: "root", Name: "electronics"},
		{ID: "child-1", Name: "laptops", ParentID: strptr("root"), DisplayOrder: 1},
		{ID: "child-2", Name: "phones", ParentID: strptr("root"), DisplayOrder: 2},
		{ID: "grandchild", Name: "ultrabooks", ParentID: strptr("child-1")},
	}

	tree := domain.BuildCategoryTree(categories)
	if len(tree) != 1 {
		t.Fatalf("expected single root, got %d", len(tree))
	}
	root := tree[0]
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	if len(root.Children[0].Children) != 1 {
		t.Fatalf("expected 1 grandchild, got %d", len(root.Children[0].Children))
	}
}

func TestBuildCategoryTree_OrphanBecomesRoot(t *testing.T) {
	// Родитель отсутствует в списке: так выглядит поддерево,
	// осиротевшее после удаления предка.
	categories := []domain.Category{
		{ID: "orphan", Name: "ultrabooks", ParentID: strptr("deleted-parent")},
	}

	tree := domain.BuildCategoryTree(categories)
	if len(tree) != 1 || tree[0].ID != "orphan" {
		t.Fatalf("expected orphan promoted to root, got %+v", tree)
	}
}

func TestAddressValueObject(t *testing.T) {
	a := domain.NewAddress("Riga", "Brivibas 1", "LV-1010")
	b := domain.NewAddress("Riga", "Brivibas 1", "LV-1010")
	c := domain.NewAddress("Riga", "Brivibas 2", "LV-1010")

	if !a.Equal(b) {
		t.Fatal("expected equal addresses")
	}
	if a.Equal(c) {
		t.Fatal("expected different addresses")
	}
	if a.String() != "Brivibas 1, Riga, LV-1010" {
		t.Fatalf("unexpected string form: %s", a.String())
	}
}
