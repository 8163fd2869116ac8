package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

// invoiceItemRecord хранит позицию вместе с порядковым номером вставки,
// чтобы возвращать позиции счёта в исходном порядке.
type invoiceItemRecord struct {
	item domain.InvoiceItem
	seq  uint64
}

// Store — общее in-memory хранилище для локальной разработки и тестов.
// Все репозитории пакета являются представлениями над одним Store,
// как таблицы одной базы.
type Store struct {
	mu         sync.RWMutex
	products   map[string]domain.Product
	customers  map[string]domain.Customer
	invoices   map[string]domain.Invoice
	items      map[string]invoiceItemRecord
	categories map[string]domain.Category
	users      map[string]domain.User
	storeInfos map[string]domain.StoreInfo
	itemSeq    uint64
}

// NewStore создаёт пустое in-memory хранилище.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]domain.Product),
		customers:  make(map[string]domain.Customer),
		invoices:   make(map[string]domain.Invoice),
		items:      make(map[string]invoiceItemRecord),
		categories: make(map[string]domain.Category),
		users:      make(map[string]domain.User),
		storeInfos: make(map[string]domain.StoreInfo),
	}
}

// nextItemSeq выдаёт следующий порядковый номер позиции.
// Вызывается только под write-блокировкой.
func (s *Store) nextItemSeq() uint64 {
	s.itemSeq++
	return s.itemSeq
}
