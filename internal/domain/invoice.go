package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod описывает способ оплаты счёта.
type PaymentMethod string

const (
	// PaymentCash — оплата наличными.
	PaymentCash PaymentMethod = "cash"
	// PaymentCard — оплата картой.
	PaymentCard PaymentMethod = "card"
	// PaymentOnline — онлайн-оплата.
	PaymentOnline PaymentMethod = "online"
)

// ParsePaymentMethod разбирает строковое представление способа оплаты.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard, PaymentOnline:
		return PaymentMethod(s), nil
	default:
		return "", ErrPaymentMethodUnknown
	}
}

// InvoiceStatus описывает жизненный цикл счёта.
type InvoiceStatus string

const (
	// InvoiceStatusDraft — счёт создан, но не финализирован.
	InvoiceStatusDraft InvoiceStatus = "draft"
	// InvoiceStatusPaid — счёт оплачен.
	InvoiceStatusPaid InvoiceStatus = "paid"
	// InvoiceStatusCanceled — счёт отменён; обратного перехода нет.
	InvoiceStatusCanceled InvoiceStatus = "canceled"
)

// ParseInvoiceStatus разбирает строковое представление статуса счёта.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch InvoiceStatus(s) {
	case InvoiceStatusDraft, InvoiceStatusPaid, InvoiceStatusCanceled:
		return InvoiceStatus(s), nil
	default:
		return "", ErrInvoiceStatusUnknown
	}
}

// InvoiceItem представляет одну позицию счёта.
// Имя и цена товара снимаются снапшотом в момент создания счёта
// и не отслеживают последующие изменения товара.
type InvoiceItem struct {
	ID        string
	InvoiceID string
	ProductID string
	// ProductName — денормализованное имя товара для отчётов без join.
	ProductName string
	Quantity    int32
	// UnitPrice — цена за единицу, зафиксированная при создании счёта.
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}

// Subtotal возвращает стоимость позиции: цена × количество.
func (i InvoiceItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt32(i.Quantity))
}

// Invoice агрегирует счёт и его позиции. Позиции принадлежат счёту:
// удаление счёта каскадно удаляет позиции.
type Invoice struct {
	ID            string
	CustomerID    string
	Date          time.Time
	PaymentMethod PaymentMethod
	Status        InvoiceStatus
	Items         []InvoiceItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AddItem добавляет позицию в счёт, проставляя ссылку на него.
func (inv *Invoice) AddItem(item InvoiceItem) {
	item.InvoiceID = inv.ID
	inv.Items = append(inv.Items, item)
}

// Total вычисляет сумму счёта по позициям. Сумма никогда не хранится
// отдельно — только выводится из позиций в момент чтения.
func (inv *Invoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ValidateInvariants проверяет базовые инварианты счёта и возвращает список замечаний.
func (inv *Invoice) ValidateInvariants() []error {
	var errs []error

	if inv.CustomerID == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	for _, item := range inv.Items {
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.UnitPrice.IsNegative() {
			errs = append(errs, ErrItemPriceInvalid)
		}
	}

	return errs
}

// InvoiceFilter описывает необязательные условия выборки счетов.
// Диапазон дат [From, To] включительный с обеих сторон.
type InvoiceFilter struct {
	CustomerID *string
	From       *time.Time
	To         *time.Time
}

// CustomerTotal — агрегат отчёта по счетам одного покупателя.
type CustomerTotal struct {
	CustomerID   string
	InvoiceCount int
	TotalAmount  decimal.Decimal
}
