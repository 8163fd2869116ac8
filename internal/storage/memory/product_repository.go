package memory

import (
	"sort"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

// productRepository — in-memory реализация ProductRepository.
type productRepository struct {
	store *Store
}

// NewProductRepository возвращает репозиторий товаров поверх общего Store.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{store: store}
}

// GetByID возвращает товар или ErrProductNotFound.
func (r *productRepository) GetByID(id string) (domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// Add сохраняет новый товар.
func (r *productRepository) Add(product domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	r.store.products[product.ID] = product
	return nil
}

// ExistsByName сообщает, занято ли имя товара.
func (r *productRepository) ExistsByName(name string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, product := range r.store.products {
		if product.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// GetAll возвращает все товары, отсортированные по имени.
func (r *productRepository) GetAll() ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.store.products))
	for _, product := range r.store.products {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Delete удаляет товар по идентификатору.
func (r *productRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.store.products, id)
	return nil
}

// Update перезаписывает товар.
func (r *productRepository) Update(product domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.store.products[product.ID] = product
	return nil
}

// DecreaseStock списывает qty единиц со склада товара.
func (r *productRepository) DecreaseStock(id string, qty int32) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product, ok := r.store.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if err := product.DecreaseStock(qty); err != nil {
		return err
	}
	r.store.products[id] = product
	return nil
}

// AssignCategory привязывает товар к категории.
func (r *productRepository) AssignCategory(productID, categoryID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product, ok := r.store.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	product.CategoryID = &categoryID
	r.store.products[productID] = product
	return nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
