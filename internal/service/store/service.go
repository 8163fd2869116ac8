package store

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

// Service управляет реквизитами магазина. Запись ожидается одна,
// но хранилище этого не навязывает: Get отдаёт самую раннюю.
type Service struct {
	infos  domain.StoreInfoRepository
	logger *log.Entry
}

// NewService конструирует сервис реквизитов магазина.
func NewService(infos domain.StoreInfoRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "store-service")
	}
	return &Service{infos: infos, logger: logger}
}

// Input — поля реквизитов магазина.
type Input struct {
	Name    string
	Address string
	Phone   string
	Website string
}

// Create сохраняет реквизиты магазина и возвращает их идентификатор.
func (s *Service) Create(input Input) (string, error) {
	if input.Name == "" {
		return "", domain.ErrNameRequired
	}

	info := domain.StoreInfo{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Address:   input.Address,
		Phone:     input.Phone,
		Website:   input.Website,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.infos.Create(info); err != nil {
		s.logger.WithError(err).WithField("store_info_id", info.ID).Error("failed to persist store info")
		return "", err
	}
	return info.ID, nil
}

// Get возвращает действующие реквизиты магазина.
func (s *Service) Get() (domain.StoreInfo, error) {
	info, err := s.infos.Get()
	if err != nil {
		s.logger.WithError(err).Warn("failed to load store info")
		return domain.StoreInfo{}, err
	}
	return info, nil
}

// Update заменяет реквизиты магазина по идентификатору.
func (s *Service) Update(id string, input Input) error {
	if input.Name == "" {
		return domain.ErrNameRequired
	}

	info, err := s.infos.GetByID(id)
	if err != nil {
		s.logger.WithError(err).WithField("store_info_id", id).Warn("failed to load store info")
		return err
	}

	info.Name = input.Name
	info.Address = input.Address
	info.Phone = input.Phone
	info.Website = input.Website

	if err := s.infos.Update(info); err != nil {
		s.logger.WithError(err).WithField("store_info_id", id).Error("failed to update store info")
		return err
	}
	return nil
}
