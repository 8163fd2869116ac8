package user

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

// Service регистрирует сотрудников магазина и проверяет их учётные данные.
// Пароли хранятся только в виде bcrypt-хеша.
type Service struct {
	users  domain.UserRepository
	logger *log.Entry
}

// NewService конструирует сервис пользователей.
func NewService(users domain.UserRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "user-service")
	}
	return &Service{users: users, logger: logger}
}

// RegisterInput — поля регистрируемого пользователя.
type RegisterInput struct {
	Name     string
	UserName string
	Email    string
	Password string
	Role     string
}

// View — пользователь без хеша пароля.
type View struct {
	ID        string
	Name      string
	UserName  string
	Email     string
	Role      string
	CreatedAt time.Time
}

// Register создаёт пользователя с ролью Seller. Логин и пароль
// обязательны, логин уникален.
func (s *Service) Register(input RegisterInput) (string, error) {
	input.Role = domain.RoleSeller
	return s.register(input)
}

// RegisterByAdmin создаёт пользователя с произвольной ролью. Операция
// доступна только пользователю с ролью Admin.
func (s *Service) RegisterByAdmin(actor domain.User, input RegisterInput) (string, error) {
	if actor.Role != domain.RoleAdmin {
		return "", domain.ErrAdminRequired
	}
	if input.Role == "" {
		input.Role = domain.RoleSeller
	}
	return s.register(input)
}

// Login проверяет пару логин-пароль и возвращает пользователя.
// Несуществующий логин и неверный пароль неразличимы для вызывающего.
func (s *Service) Login(userName, password string) (View, error) {
	if userName == "" || password == "" {
		return View{}, domain.ErrCredentialsRequired
	}

	user, err := s.users.GetByUserName(userName)
	if err != nil {
		s.logger.WithError(err).WithField("user_name", userName).Warn("failed to load user")
		return View{}, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return View{}, domain.ErrInvalidCredentials
	}
	return toView(user), nil
}

// List возвращает всех пользователей без хешей паролей.
func (s *Service) List() ([]View, error) {
	users, err := s.users.GetAll()
	if err != nil {
		s.logger.WithError(err).Error("failed to list users")
		return nil, err
	}

	views := make([]View, 0, len(users))
	for _, user := range users {
		views = append(views, toView(user))
	}
	return views, nil
}

func (s *Service) register(input RegisterInput) (string, error) {
	if input.UserName == "" || input.Password == "" {
		return "", domain.ErrCredentialsRequired
	}

	if _, err := s.users.GetByUserName(input.UserName); err == nil {
		return "", domain.ErrUserNameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.WithError(err).Error("failed to hash password")
		return "", err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		UserName:     input.UserName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Add(user); err != nil {
		s.logger.WithError(err).WithField("user_name", input.UserName).Error("failed to persist user")
		return "", err
	}
	return user.ID, nil
}

func toView(user domain.User) View {
	return View{
		ID:        user.ID,
		Name:      user.Name,
		UserName:  user.UserName,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
