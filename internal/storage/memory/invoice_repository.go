package memory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

// invoiceRepository — in-memory реализация InvoiceRepository.
// Счета хранятся без позиций; позиции лежат в общей таблице Store.items
// и подшиваются к счёту при чтении.
type invoiceRepository struct {
	store *Store
}

// NewInvoiceRepository возвращает репозиторий счетов поверх общего Store.
func NewInvoiceRepository(store *Store) domain.InvoiceRepository {
	return &invoiceRepository{store: store}
}

// GetAll возвращает все счета вместе с позициями.
func (r *invoiceRepository) GetAll() ([]domain.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.Invoice, 0, len(r.store.invoices))
	for _, inv := range r.store.invoices {
		inv.Items = r.loadItems(inv.ID)
		result = append(result, inv)
	}
	sortInvoices(result)
	return result, nil
}

// Add сохраняет счёт вместе с позициями как одно целое.
func (r *invoiceRepository) Add(invoice domain.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := invoice.Items
	invoice.Items = nil
	r.store.invoices[invoice.ID] = invoice
	for _, item := range items {
		item.InvoiceID = invoice.ID
		r.store.items[item.ID] = invoiceItemRecord{item: item, seq: r.store.nextItemSeq()}
	}
	return nil
}

// Delete удаляет счёт и каскадно его позиции.
func (r *invoiceRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.invoices[id]; !ok {
		return domain.ErrInvoiceNotFound
	}
	delete(r.store.invoices, id)
	for itemID, rec := range r.store.items {
		if rec.item.InvoiceID == id {
			delete(r.store.items, itemID)
		}
	}
	return nil
}

// Update перезаписывает счёт, полностью заменяя список позиций.
func (r *invoiceRepository) Update(invoice domain.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.invoices[invoice.ID]; !ok {
		return domain.ErrInvoiceNotFound
	}

	for itemID, rec := range r.store.items {
		if rec.item.InvoiceID == invoice.ID {
			delete(r.store.items, itemID)
		}
	}
	items := invoice.Items
	invoice.Items = nil
	r.store.invoices[invoice.ID] = invoice
	for _, item := range items {
		item.InvoiceID = invoice.ID
		r.store.items[item.ID] = invoiceItemRecord{item: item, seq: r.store.nextItemSeq()}
	}
	return nil
}

// GetByID возвращает счёт с позициями или ErrInvoiceNotFound.
func (r *invoiceRepository) GetByID(id string) (domain.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	inv, ok := r.store.invoices[id]
	if !ok {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	inv.Items = r.loadItems(id)
	return inv, nil
}

// GetFiltered возвращает счета по необязательным условиям фильтра.
// Диапазон дат включительный с обеих сторон.
func (r *invoiceRepository) GetFiltered(filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.Invoice, 0)
	for _, inv := range r.store.invoices {
		if filter.CustomerID != nil && inv.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.From != nil && inv.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && inv.Date.After(*filter.To) {
			continue
		}
		inv.Items = r.loadItems(inv.ID)
		result = append(result, inv)
	}
	sortInvoices(result)
	return result, nil
}

// CustomerTotal агрегирует счета покупателя: количество и общая сумма.
func (r *invoiceRepository) CustomerTotal(customerID string) (domain.CustomerTotal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	total := domain.CustomerTotal{CustomerID: customerID, TotalAmount: decimal.Zero}
	for _, inv := range r.store.invoices {
		if inv.CustomerID != customerID {
			continue
		}
		total.InvoiceCount++
		for _, item := range r.loadItems(inv.ID) {
			total.TotalAmount = total.TotalAmount.Add(item.Subtotal())
		}
	}
	if total.InvoiceCount == 0 {
		return domain.CustomerTotal{}, domain.ErrNoInvoicesForCustomer
	}
	return total, nil
}

// loadItems собирает позиции счёта в порядке вставки.
// Вызывается только под блокировкой Store.
func (r *invoiceRepository) loadItems(invoiceID string) []domain.InvoiceItem {
	records := make([]invoiceItemRecord, 0)
	for _, rec := range r.store.items {
		if rec.item.InvoiceID == invoiceID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].seq < records[j].seq })

	items := make([]domain.InvoiceItem, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.item)
	}
	return items
}

func sortInvoices(invoices []domain.Invoice) {
	sort.Slice(invoices, func(i, j int) bool {
		if !invoices[i].Date.Equal(invoices[j].Date) {
			return invoices[i].Date.Before(invoices[j].Date)
		}
		return invoices[i].ID < invoices[j].ID
	})
}

var _ domain.InvoiceRepository = (*invoiceRepository)(nil)
