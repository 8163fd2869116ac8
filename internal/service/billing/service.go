package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
	"github.com/vladislavdragonenkov/eshop/internal/metrics"
)

// Service реализует жизненный цикл счетов поверх доменных репозиториев:
// создание со списанием склада, полная замена при обновлении, удаление
// с каскадом позиций и отчёт по суммам покупателя.
type Service struct {
	invoices  domain.InvoiceRepository
	items     domain.InvoiceItemRepository
	products  domain.ProductRepository
	customers domain.CustomerRepository
	logger    *log.Entry
	metrics   *metrics.BillingMetrics
}

// NewService конструирует сервис с зависимостями.
func NewService(
	invoices domain.InvoiceRepository,
	items domain.InvoiceItemRepository,
	products domain.ProductRepository,
	customers domain.CustomerRepository,
	logger *log.Entry,
	billingMetrics *metrics.BillingMetrics,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "billing-service")
	}
	return &Service{
		invoices:  invoices,
		items:     items,
		products:  products,
		customers: customers,
		logger:    logger,
		metrics:   billingMetrics,
	}
}

// LineInput — одна запрашиваемая позиция счёта. Цена задаётся вызывающей
// стороной и фиксируется в позиции; текущая цена товара не подставляется.
type LineInput struct {
	ProductID string
	Quantity  int32
	UnitPrice decimal.Decimal
}

// CreateInvoiceInput — вход операции создания счёта.
type CreateInvoiceInput struct {
	CustomerID    string
	Date          time.Time
	PaymentMethod domain.PaymentMethod
	Items         []LineInput
}

// UpdateInvoiceInput — полный набор полей для замены счёта.
type UpdateInvoiceInput struct {
	ID            string
	CustomerID    string
	Date          time.Time
	Status        domain.InvoiceStatus
	PaymentMethod domain.PaymentMethod
	Items         []LineInput
}

// UpdateItemInput — замена полей одной позиции счёта.
type UpdateItemInput struct {
	ID        string
	ProductID string
	Quantity  int32
	UnitPrice decimal.Decimal
}

// CreateInvoice создаёт счёт в статусе Draft, снимая снапшот имени и цены
// каждого товара и списывая склад по ходу обработки позиций.
// Не указанный способ оплаты трактуется как оплата наличными.
//
// Списания применяются по одной позиции без общей транзакции: если
// обработка обрывается на N-й позиции, списания первых N-1 позиций
// остаются в силе. Поведение закреплено регрессионным тестом.
func (s *Service) CreateInvoice(input CreateInvoiceInput) (string, error) {
	if input.CustomerID == "" {
		return "", domain.ErrCustomerRequired
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = domain.PaymentCash
	}
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return "", domain.ErrItemQtyInvalid
		}
		if line.UnitPrice.IsNegative() {
			return "", domain.ErrItemPriceInvalid
		}
	}

	if _, err := s.customers.GetByID(input.CustomerID); err != nil {
		s.logger.WithError(err).WithField("customer_id", input.CustomerID).Warn("failed to load customer")
		return "", err
	}

	now := time.Now().UTC()
	date := input.Date
	if date.IsZero() {
		date = now
	}

	invoice := domain.Invoice{
		ID:            uuid.NewString(),
		CustomerID:    input.CustomerID,
		Date:          date,
		PaymentMethod: input.PaymentMethod,
		Status:        domain.InvoiceStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	start := time.Now()
	for _, line := range input.Items {
		product, err := s.products.GetByID(line.ProductID)
		if err != nil {
			s.logger.WithError(err).WithFields(log.Fields{
				"invoice_id": invoice.ID,
				"product_id": line.ProductID,
			}).Warn("failed to load product while creating invoice")
			return "", err
		}

		invoice.AddItem(domain.InvoiceItem{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			CreatedAt:   now,
		})

		if err := s.products.DecreaseStock(line.ProductID, line.Quantity); err != nil {
			s.logger.WithError(err).WithFields(log.Fields{
				"invoice_id": invoice.ID,
				"product_id": line.ProductID,
				"quantity":   line.Quantity,
			}).Warn("failed to decrease stock")
			if s.metrics != nil {
				s.metrics.RecordInsufficientStock()
			}
			return "", err
		}
	}

	if err := s.invoices.Add(invoice); err != nil {
		s.logger.WithError(err).WithField("invoice_id", invoice.ID).Error("failed to persist invoice")
		return "", err
	}

	if s.metrics != nil {
		s.metrics.RecordInvoiceCreated()
		s.metrics.RecordCreateDuration(time.Since(start))
	}
	return invoice.ID, nil
}

// UpdateInvoice безусловно заменяет поля счёта и полностью пересобирает
// список позиций из входа. Существование товаров не перепроверяется, склад
// не корректируется, имя товара не снимается заново — в отличие от создания.
func (s *Service) UpdateInvoice(input UpdateInvoiceInput) error {
	invoice, err := s.loadInvoice(input.ID, "UpdateInvoice")
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	invoice.Date = input.Date
	invoice.CustomerID = input.CustomerID
	invoice.Status = input.Status
	invoice.PaymentMethod = input.PaymentMethod
	invoice.UpdatedAt = now

	invoice.Items = nil
	for _, line := range input.Items {
		invoice.AddItem(domain.InvoiceItem{
			ID:        uuid.NewString(),
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			CreatedAt: now,
		})
	}

	if err := s.invoices.Update(invoice); err != nil {
		s.logger.WithError(err).WithField("invoice_id", invoice.ID).Error("failed to update invoice")
		return err
	}
	return nil
}

// DeleteInvoice отменяет и удаляет счёт вместе с позициями.
// Статус Canceled выставляется только на загруженной копии и не
// персистится перед удалением; склад при удалении не восстанавливается.
func (s *Service) DeleteInvoice(id string) error {
	invoice, err := s.loadInvoice(id, "DeleteInvoice")
	if err != nil {
		return err
	}

	invoice.Status = domain.InvoiceStatusCanceled

	if err := s.invoices.Delete(invoice.ID); err != nil {
		s.logger.WithError(err).WithField("invoice_id", invoice.ID).Error("failed to delete invoice")
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordInvoiceDeleted()
	}
	return nil
}

// GetInvoice возвращает один счёт с позициями и вычисленной суммой.
func (s *Service) GetInvoice(id string) (InvoiceView, error) {
	invoice, err := s.loadInvoice(id, "GetInvoice")
	if err != nil {
		return InvoiceView{}, err
	}
	return toView(invoice), nil
}

// ListInvoices возвращает все счета с суммами, вычисленными на чтении.
func (s *Service) ListInvoices() ([]InvoiceView, error) {
	invoices, err := s.invoices.GetAll()
	if err != nil {
		s.logger.WithError(err).Error("failed to list invoices")
		return nil, err
	}
	return toViews(invoices), nil
}

// ListFiltered возвращает счета по необязательным условиям фильтра.
// Пагинация здесь сознательно не применяется.
func (s *Service) ListFiltered(filter domain.InvoiceFilter) ([]InvoiceView, error) {
	invoices, err := s.invoices.GetFiltered(filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to list filtered invoices")
		return nil, err
	}
	return toViews(invoices), nil
}

// InvoiceItems возвращает позиции счёта в порядке добавления.
func (s *Service) InvoiceItems(invoiceID string) ([]domain.InvoiceItem, error) {
	items, err := s.items.GetByInvoiceID(invoiceID)
	if err != nil {
		s.logger.WithError(err).WithField("invoice_id", invoiceID).Error("failed to list invoice items")
		return nil, err
	}
	return items, nil
}

// CustomerTotal возвращает количество счетов покупателя и их общую сумму.
func (s *Service) CustomerTotal(customerID string) (domain.CustomerTotal, error) {
	total, err := s.invoices.CustomerTotal(customerID)
	if err != nil {
		s.logger.WithError(err).WithField("customer_id", customerID).Warn("failed to build customer total")
		return domain.CustomerTotal{}, err
	}
	return total, nil
}

// UpdateItem заменяет поля одной позиции. Согласованность с владеющим
// счётом и складом не перепроверяется.
func (s *Service) UpdateItem(input UpdateItemInput) error {
	item, err := s.items.GetByID(input.ID)
	if err != nil {
		s.logger.WithError(err).WithField("item_id", input.ID).Warn("failed to load invoice item")
		return err
	}

	item.ProductID = input.ProductID
	item.Quantity = input.Quantity
	item.UnitPrice = input.UnitPrice

	if err := s.items.Update(item); err != nil {
		s.logger.WithError(err).WithField("item_id", item.ID).Error("failed to update invoice item")
		return err
	}
	return nil
}

// DeleteItem жёстко удаляет одну позицию по идентификатору.
func (s *Service) DeleteItem(id string) error {
	if err := s.items.Delete(id); err != nil {
		s.logger.WithError(err).WithField("item_id", id).Warn("failed to delete invoice item")
		return err
	}
	return nil
}

func (s *Service) loadInvoice(id, operation string) (domain.Invoice, error) {
	invoice, err := s.invoices.GetByID(id)
	if err == nil {
		return invoice, nil
	}

	s.logger.WithError(err).WithFields(log.Fields{
		"operation":  operation,
		"invoice_id": id,
	}).Warn("failed to load invoice")
	return domain.Invoice{}, err
}
