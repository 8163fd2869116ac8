package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

// ItemView — позиция счёта в ответе на чтение.
type ItemView struct {
	ID          string
	ProductID   string
	ProductName string
	Quantity    int32
	UnitPrice   decimal.Decimal
}

// InvoiceView — счёт в ответе на чтение. TotalAmount всегда вычислен
// из позиций в момент формирования представления.
type InvoiceView struct {
	ID            string
	CustomerID    string
	Date          time.Time
	PaymentMethod domain.PaymentMethod
	Status        domain.InvoiceStatus
	TotalAmount   decimal.Decimal
	Items         []ItemView
}

func toView(invoice domain.Invoice) InvoiceView {
	items := make([]ItemView, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, ItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return InvoiceView{
		ID:            invoice.ID,
		CustomerID:    invoice.CustomerID,
		Date:          invoice.Date,
		PaymentMethod: invoice.PaymentMethod,
		Status:        invoice.Status,
		TotalAmount:   invoice.Total(),
		Items:         items,
	}
}

func toViews(invoices []domain.Invoice) []InvoiceView {
	views := make([]InvoiceView, 0, len(invoices))
	for _, invoice := range invoices {
		views = append(views, toView(invoice))
	}
	return views
}
