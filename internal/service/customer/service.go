package customer

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

// Service управляет карточками покупателей.
type Service struct {
	customers domain.CustomerRepository
	logger    *log.Entry
}

// NewService конструирует сервис покупателей.
func NewService(customers domain.CustomerRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "customer-service")
	}
	return &Service{customers: customers, logger: logger}
}

// CreateInput — поля нового покупателя.
type CreateInput struct {
	Name       string
	City       string
	Street     string
	PostalCode string
}

// Create создаёт покупателя. Имя обязательно и уникально.
func (s *Service) Create(input CreateInput) (string, error) {
	if input.Name == "" {
		return "", domain.ErrNameRequired
	}

	exists, err := s.customers.ExistsByName(input.Name)
	if err != nil {
		s.logger.WithError(err).WithField("name", input.Name).Error("failed to check customer name")
		return "", err
	}
	if exists {
		return "", domain.ErrNameTaken
	}

	customer := domain.Customer{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Address:   domain.NewAddress(input.City, input.Street, input.PostalCode),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.customers.Add(customer); err != nil {
		s.logger.WithError(err).WithField("customer_id", customer.ID).Error("failed to persist customer")
		return "", err
	}
	return customer.ID, nil
}

// UpdateName меняет только имя покупателя, адрес остаётся прежним.
func (s *Service) UpdateName(id, name string) error {
	if name == "" {
		return domain.ErrNameRequired
	}

	customer, err := s.customers.GetByID(id)
	if err != nil {
		s.logger.WithError(err).WithField("customer_id", id).Warn("failed to load customer")
		return err
	}

	customer.Name = name
	if err := s.customers.Update(customer); err != nil {
		s.logger.WithError(err).WithField("customer_id", id).Error("failed to update customer")
		return err
	}
	return nil
}

// Delete жёстко удаляет покупателя. Его счета не затрагиваются.
func (s *Service) Delete(id string) error {
	if err := s.customers.Delete(id); err != nil {
		s.logger.WithError(err).WithField("customer_id", id).Warn("failed to delete customer")
		return err
	}
	return nil
}

// Get возвращает одного покупателя.
func (s *Service) Get(id string) (domain.Customer, error) {
	customer, err := s.customers.GetByID(id)
	if err != nil {
		s.logger.WithError(err).WithField("customer_id", id).Warn("failed to load customer")
		return domain.Customer{}, err
	}
	return customer, nil
}

// List возвращает всех покупателей.
func (s *Service) List() ([]domain.Customer, error) {
	customers, err := s.customers.GetAll()
	if err != nil {
		s.logger.WithError(err).Error("failed to list customers")
		return nil, err
	}
	return customers, nil
}
