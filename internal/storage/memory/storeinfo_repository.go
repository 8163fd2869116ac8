package memory

import (
	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

// storeInfoRepository — in-memory реализация StoreInfoRepository.
type storeInfoRepository struct {
	store *Store
}

// NewStoreInfoRepository возвращает репозиторий записи о магазине поверх общего Store.
func NewStoreInfoRepository(store *Store) domain.StoreInfoRepository {
	return &storeInfoRepository{store: store}
}

// Create сохраняет новую запись о магазине.
func (r *storeInfoRepository) Create(info domain.StoreInfo) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.storeInfos[info.ID] = info
	return nil
}

// Get возвращает самую раннюю запись или ErrStoreInfoNotFound.
// Схема не ограничивает количество строк, singleton только логический.
func (r *storeInfoRepository) Get() (domain.StoreInfo, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var earliest *domain.StoreInfo
	for id := range r.store.storeInfos {
		info := r.store.storeInfos[id]
		if earliest == nil || info.CreatedAt.Before(earliest.CreatedAt) ||
			(info.CreatedAt.Equal(earliest.CreatedAt) && info.ID < earliest.ID) {
			earliest = &info
		}
	}
	if earliest == nil {
		return domain.StoreInfo{}, domain.ErrStoreInfoNotFound
	}
	return *earliest, nil
}

// GetByID возвращает запись по идентификатору или ErrStoreInfoNotFound.
func (r *storeInfoRepository) GetByID(id string) (domain.StoreInfo, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	info, ok := r.store.storeInfos[id]
	if !ok {
		return domain.StoreInfo{}, domain.ErrStoreInfoNotFound
	}
	return info, nil
}

// Update перезаписывает запись.
func (r *storeInfoRepository) Update(info domain.StoreInfo) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.storeInfos[info.ID]; !ok {
		return domain.ErrStoreInfoNotFound
	}
	r.store.storeInfos[info.ID] = info
	return nil
}

var _ domain.StoreInfoRepository = (*storeInfoRepository)(nil)
