package memory

import (
	"sort"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

// invoiceItemRepository — in-memory реализация InvoiceItemRepository.
// Работает с той же таблицей позиций, что и репозиторий счетов.
type invoiceItemRepository struct {
	store *Store
}

// NewInvoiceItemRepository возвращает репозиторий позиций поверх общего Store.
func NewInvoiceItemRepository(store *Store) domain.InvoiceItemRepository {
	return &invoiceItemRepository{store: store}
}

// AddRange сохраняет набор позиций.
func (r *invoiceItemRepository) AddRange(items []domain.InvoiceItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		r.store.items[item.ID] = invoiceItemRecord{item: item, seq: r.store.nextItemSeq()}
	}
	return nil
}

// Delete удаляет позицию по идентификатору.
func (r *invoiceItemRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.items[id]; !ok {
		return domain.ErrInvoiceItemNotFound
	}
	delete(r.store.items, id)
	return nil
}

// GetByID возвращает позицию или ErrInvoiceItemNotFound.
func (r *invoiceItemRepository) GetByID(id string) (domain.InvoiceItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.items[id]
	if !ok {
		return domain.InvoiceItem{}, domain.ErrInvoiceItemNotFound
	}
	return rec.item, nil
}

// Update перезаписывает позицию, сохраняя её порядковый номер.
func (r *invoiceItemRepository) Update(item domain.InvoiceItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.items[item.ID]
	if !ok {
		return domain.ErrInvoiceItemNotFound
	}
	rec.item = item
	r.store.items[item.ID] = rec
	return nil
}

// GetByInvoiceID возвращает позиции счёта в порядке добавления.
func (r *invoiceItemRepository) GetByInvoiceID(invoiceID string) ([]domain.InvoiceItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

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
	return items, nil
}

var _ domain.InvoiceItemRepository = (*invoiceItemRepository)(nil)
