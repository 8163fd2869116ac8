package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

func seedPostgresInvoice(t *testing.T, repo domain.InvoiceRepository, id, customerID string, date time.Time, items ...domain.InvoiceItem) domain.Invoice {
	t.Helper()

	inv := domain.Invoice{
		ID:            id,
		CustomerID:    customerID,
		Date:          date,
		PaymentMethod: domain.PaymentCash,
		Status:        domain.InvoiceStatusDraft,
		CreatedAt:     date,
		UpdatedAt:     date,
	}
	for _, item := range items {
		item.CreatedAt = date
		inv.AddItem(item)
	}
	if err := repo.Add(inv); err != nil {
		t.Fatalf("add invoice: %v", err)
	}
	return inv
}

func TestInvoiceRepositoryIntegration_Lifecycle(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	invoices := NewInvoiceRepository(store)
	items := NewInvoiceItemRepository(store)

	now := time.Now().UTC().Truncate(time.Microsecond)
	seedPostgresInvoice(t, invoices, "invoice-1", "customer-1", now,
		domain.InvoiceItem{ID: "item-1", ProductID: "product-1", ProductName: "keyboard", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		domain.InvoiceItem{ID: "item-2", ProductID: "product-2", ProductName: "mouse", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
	)

	got, err := invoices.GetByID("invoice-1")
	if err != nil {
		t.Fatalf("get invoice: %v", err)
	}
	if len(got.Items) != 2 || got.Items[0].ID != "item-1" || got.Items[1].ID != "item-2" {
		t.Fatalf("expected items in insertion order, got %+v", got.Items)
	}
	if !got.Total().Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected total 25, got %s", got.Total())
	}

	// Замена позиций при обновлении.
	got.Items = nil
	got.AddItem(domain.InvoiceItem{ID: "item-3", ProductID: "product-3", Quantity: 4, UnitPrice: decimal.NewFromInt(2), CreatedAt: now})
	got.Status = domain.InvoiceStatusPaid
	if err := invoices.Update(got); err != nil {
		t.Fatalf("update invoice: %v", err)
	}

	updated, err := invoices.GetByID("invoice-1")
	if err != nil {
		t.Fatalf("get updated invoice: %v", err)
	}
	if updated.Status != domain.InvoiceStatusPaid {
		t.Fatalf("expected paid status, got %s", updated.Status)
	}
	if len(updated.Items) != 1 || updated.Items[0].ID != "item-3" {
		t.Fatalf("expected items replaced, got %+v", updated.Items)
	}

	// Каскадное удаление позиций.
	if err := invoices.Delete("invoice-1"); err != nil {
		t.Fatalf("delete invoice: %v", err)
	}
	if _, err := invoices.GetByID("invoice-1"); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
	if _, err := items.GetByID("item-3"); !errors.Is(err, domain.ErrInvoiceItemNotFound) {
		t.Fatalf("expected cascade-deleted item, got %v", err)
	}
}

func TestInvoiceRepositoryIntegration_GetFiltered(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	invoices := NewInvoiceRepository(store)

	day := func(d int) time.Time { return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC) }
	seedPostgresInvoice(t, invoices, "invoice-1", "customer-1", day(1))
	seedPostgresInvoice(t, invoices, "invoice-2", "customer-1", day(5))
	seedPostgresInvoice(t, invoices, "invoice-3", "customer-2", day(5))

	customer := "customer-1"
	from, to := day(1), day(5)
	got, err := invoices.GetFiltered(domain.InvoiceFilter{CustomerID: &customer, From: &from, To: &to})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(got))
	}

	// Границы диапазона включительные.
	from2 := day(5)
	got, err = invoices.GetFiltered(domain.InvoiceFilter{From: &from2})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected inclusive from boundary to match 2 invoices, got %d", len(got))
	}
}

func TestInvoiceRepositoryIntegration_CustomerTotal(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	invoices := NewInvoiceRepository(store)

	// Первый счёт с двумя позициями: join по позициям не должен
	// раздувать количество счетов.
	now := time.Now().UTC().Truncate(time.Microsecond)
	seedPostgresInvoice(t, invoices, "invoice-1", "customer-1", now,
		domain.InvoiceItem{ID: "item-1", ProductID: "product-1", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		domain.InvoiceItem{ID: "item-2", ProductID: "product-2", Quantity: 3, UnitPrice: decimal.NewFromInt(1)},
	)
	seedPostgresInvoice(t, invoices, "invoice-2", "customer-1", now,
		domain.InvoiceItem{ID: "item-3", ProductID: "product-3", Quantity: 1, UnitPrice: decimal.NewFromInt(2)},
	)

	total, err := invoices.CustomerTotal("customer-1")
	if err != nil {
		t.Fatalf("customer total: %v", err)
	}
	if total.InvoiceCount != 2 {
		t.Fatalf("expected 2 invoices, got %d", total.InvoiceCount)
	}
	if !total.TotalAmount.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected total 25, got %s", total.TotalAmount)
	}

	if _, err := invoices.CustomerTotal("customer-without-invoices"); !errors.Is(err, domain.ErrNoInvoicesForCustomer) {
		t.Fatalf("expected ErrNoInvoicesForCustomer, got %v", err)
	}
}
