package memory

import (
	"sort"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

// categoryRepository — in-memory реализация CategoryRepository.
type categoryRepository struct {
	store *Store
}

// NewCategoryRepository возвращает репозиторий категорий поверх общего Store.
func NewCategoryRepository(store *Store) domain.CategoryRepository {
	return &categoryRepository{store: store}
}

// GetByID возвращает категорию или ErrCategoryNotFound.
func (r *categoryRepository) GetByID(id string) (domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	category, ok := r.store.categories[id]
	if !ok {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	return category, nil
}

// Add сохраняет новую категорию.
func (r *categoryRepository) Add(category domain.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.categories[category.ID] = category
	return nil
}

// ExistsByName сообщает, занято ли имя категории.
func (r *categoryRepository) ExistsByName(name string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, category := range r.store.categories {
		if category.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// GetAll возвращает все категории плоским списком,
// отсортированным по порядку отображения.
func (r *categoryRepository) GetAll() ([]domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.Category, 0, len(r.store.categories))
	for _, category := range r.store.categories {
		result = append(result, category)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DisplayOrder != result[j].DisplayOrder {
			return result[i].DisplayOrder < result[j].DisplayOrder
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Delete удаляет категорию и её прямых детей.
// Внуки остаются с висячим ParentID.
func (r *categoryRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	for childID, child := range r.store.categories {
		if child.ParentID != nil && *child.ParentID == id {
			delete(r.store.categories, childID)
		}
	}
	delete(r.store.categories, id)
	return nil
}

// Update перезаписывает категорию.
func (r *categoryRepository) Update(category domain.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	r.store.categories[category.ID] = category
	return nil
}

var _ domain.CategoryRepository = (*categoryRepository)(nil)
