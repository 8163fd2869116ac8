package memory

import (
	"sort"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

// customerRepository — in-memory реализация CustomerRepository.
type customerRepository struct {
	store *Store
}

// NewCustomerRepository возвращает репозиторий покупателей поверх общего Store.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{store: store}
}

// GetByID возвращает покупателя или ErrCustomerNotFound.
func (r *customerRepository) GetByID(id string) (domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	customer, ok := r.store.customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// Add сохраняет нового покупателя.
func (r *customerRepository) Add(customer domain.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.customers[customer.ID] = customer
	return nil
}

// ExistsByName сообщает, занято ли имя покупателя.
func (r *customerRepository) ExistsByName(name string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, customer := range r.store.customers {
		if customer.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// GetAll возвращает всех покупателей, отсортированных по имени.
func (r *customerRepository) GetAll() ([]domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.Customer, 0, len(r.store.customers))
	for _, customer := range r.store.customers {
		result = append(result, customer)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Delete удаляет покупателя по идентификатору.
func (r *customerRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.store.customers, id)
	return nil
}

// Update перезаписывает покупателя.
func (r *customerRepository) Update(customer domain.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[customer.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	r.store.customers[customer.ID] = customer
	return nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
