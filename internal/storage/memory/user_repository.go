package memory

import (
	"sort"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

// userRepository — in-memory реализация UserRepository.
type userRepository struct {
	store *Store
}

// NewUserRepository возвращает репозиторий пользователей поверх общего Store.
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{store: store}
}

// GetByUserName возвращает пользователя по логину или ErrUserNotFound.
func (r *userRepository) GetByUserName(userName string) (domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.UserName == userName {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

// Add сохраняет нового пользователя.
func (r *userRepository) Add(user domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.users[user.ID] = user
	return nil
}

// GetAll возвращает всех пользователей, отсортированных по логину.
func (r *userRepository) GetAll() ([]domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.User, 0, len(r.store.users))
	for _, user := range r.store.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserName < result[j].UserName })
	return result, nil
}

var _ domain.UserRepository = (*userRepository)(nil)
