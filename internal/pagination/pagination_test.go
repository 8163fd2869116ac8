package pagination

import "testing"

func TestNew(t *testing.T) {
	source := []int{1, 2, 3, 4, 5}

	page := New(source, 2, 2)
	if len(page.Items) != 2 || page.Items[0] != 3 || page.Items[1] != 4 {
		t.Fatalf("expected items [3 4], got %v", page.Items)
	}
	if page.TotalCount != 5 {
		t.Fatalf("expected total count 5, got %d", page.TotalCount)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.TotalPages)
	}
	if !page.HasPreviousPage() || !page.HasNextPage() {
		t.Fatalf("expected middle page to have neighbours")
	}
}

func TestNew_InvalidParamsFallBackToDefaults(t *testing.T) {
	source := []int{1, 2, 3}

	page := New(source, 0, -5)
	if page.PageIndex != 1 {
		t.Fatalf("expected page index 1, got %d", page.PageIndex)
	}
	if len(page.Items) != 3 {
		t.Fatalf("expected full first page, got %v", page.Items)
	}
	if page.HasPreviousPage() {
		t.Fatal("first page should not have a previous page")
	}
}

func TestNew_PageBeyondEnd(t *testing.T) {
	source := []int{1, 2, 3}

	page := New(source, 10, 2)
	if len(page.Items) != 0 {
		t.Fatalf("expected empty page, got %v", page.Items)
	}
	if page.TotalPages != 2 || page.TotalCount != 3 {
		t.Fatalf("expected metadata preserved, got %+v", page)
	}
	if page.HasNextPage() {
		t.Fatal("page beyond the end should not have a next page")
	}
}

func TestNew_EmptySource(t *testing.T) {
	page := New([]string{}, 1, 10)
	if len(page.Items) != 0 || page.TotalPages != 0 || page.TotalCount != 0 {
		t.Fatalf("expected empty page with zero metadata, got %+v", page)
	}
}
