package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

// Service управляет каталогом: товарами и деревом категорий.
type Service struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	logger     *log.Entry
}

// NewService конструирует сервис каталога.
func NewService(
	products domain.ProductRepository,
	categories domain.CategoryRepository,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog-service")
	}
	return &Service{
		products:   products,
		categories: categories,
		logger:     logger,
	}
}

// ProductInput — поля товара при создании и обновлении.
type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Stock       int32
	CategoryID  *string
	Description string
}

// CategoryInput — поля категории при создании и обновлении.
type CategoryInput struct {
	Name         string
	ParentID     *string
	ImageURL     *string
	DisplayOrder int32
}

// CreateProduct создаёт товар. Имя обязательно и уникально,
// цена и остаток не могут быть отрицательными.
func (s *Service) CreateProduct(input ProductInput) (string, error) {
	if err := s.validateProduct(input); err != nil {
		return "", err
	}

	exists, err := s.products.ExistsByName(input.Name)
	if err != nil {
		s.logger.WithError(err).WithField("name", input.Name).Error("failed to check product name")
		return "", err
	}
	if exists {
		return "", domain.ErrNameTaken
	}

	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(*input.CategoryID); err != nil {
			s.logger.WithError(err).WithField("category_id", *input.CategoryID).Warn("failed to load category for product")
			return "", err
		}
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Price:       input.Price,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Add(product); err != nil {
		s.logger.WithError(err).WithField("product_id", product.ID).Error("failed to persist product")
		return "", err
	}
	return product.ID, nil
}

// UpdateProduct заменяет поля товара. Уникальность имени при обновлении
// не перепроверяется.
func (s *Service) UpdateProduct(id string, input ProductInput) error {
	if err := s.validateProduct(input); err != nil {
		return err
	}

	product, err := s.products.GetByID(id)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", id).Warn("failed to load product")
		return err
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Stock = input.Stock
	product.CategoryID = input.CategoryID
	product.Description = input.Description
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(product); err != nil {
		s.logger.WithError(err).WithField("product_id", id).Error("failed to update product")
		return err
	}
	return nil
}

// DeleteProduct жёстко удаляет товар.
func (s *Service) DeleteProduct(id string) error {
	if err := s.products.Delete(id); err != nil {
		s.logger.WithError(err).WithField("product_id", id).Warn("failed to delete product")
		return err
	}
	return nil
}

// GetProduct возвращает товар с именем его категории, если она назначена.
func (s *Service) GetProduct(id string) (ProductView, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", id).Warn("failed to load product")
		return ProductView{}, err
	}
	return s.toProductView(product), nil
}

// GetProducts возвращает все товары с именами категорий.
func (s *Service) GetProducts() ([]ProductView, error) {
	products, err := s.products.GetAll()
	if err != nil {
		s.logger.WithError(err).Error("failed to list products")
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, s.toProductView(product))
	}
	return views, nil
}

// AssignProductToCategory привязывает существующий товар к существующей
// категории.
func (s *Service) AssignProductToCategory(productID, categoryID string) error {
	if _, err := s.products.GetByID(productID); err != nil {
		s.logger.WithError(err).WithField("product_id", productID).Warn("failed to load product")
		return err
	}
	if _, err := s.categories.GetByID(categoryID); err != nil {
		s.logger.WithError(err).WithField("category_id", categoryID).Warn("failed to load category")
		return err
	}

	if err := s.products.AssignCategory(productID, categoryID); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"product_id":  productID,
			"category_id": categoryID,
		}).Error("failed to assign category")
		return err
	}
	return nil
}

// CreateCategory создаёт категорию. Имя обязательно и уникально,
// родитель, если указан, должен существовать.
func (s *Service) CreateCategory(input CategoryInput) (string, error) {
	if input.Name == "" {
		return "", domain.ErrNameRequired
	}

	exists, err := s.categories.ExistsByName(input.Name)
	if err != nil {
		s.logger.WithError(err).WithField("name", input.Name).Error("failed to check category name")
		return "", err
	}
	if exists {
		return "", domain.ErrNameTaken
	}

	if input.ParentID != nil {
		if _, err := s.categories.GetByID(*input.ParentID); err != nil {
			s.logger.WithError(err).WithField("parent_id", *input.ParentID).Warn("failed to load parent category")
			return "", err
		}
	}

	category := domain.Category{
		ID:           uuid.NewString(),
		Name:         input.Name,
		ParentID:     input.ParentID,
		ImageURL:     input.ImageURL,
		DisplayOrder: input.DisplayOrder,
	}
	if err := s.categories.Add(category); err != nil {
		s.logger.WithError(err).WithField("category_id", category.ID).Error("failed to persist category")
		return "", err
	}
	return category.ID, nil
}

// UpdateCategory заменяет поля категории. Категория не может быть
// родителем самой себя.
func (s *Service) UpdateCategory(id string, input CategoryInput) error {
	if input.Name == "" {
		return domain.ErrNameRequired
	}
	if input.ParentID != nil && *input.ParentID == id {
		return domain.ErrSelfParentCategory
	}

	category, err := s.categories.GetByID(id)
	if err != nil {
		s.logger.WithError(err).WithField("category_id", id).Warn("failed to load category")
		return err
	}

	category.Name = input.Name
	category.ParentID = input.ParentID
	category.ImageURL = input.ImageURL
	category.DisplayOrder = input.DisplayOrder

	if err := s.categories.Update(category); err != nil {
		s.logger.WithError(err).WithField("category_id", id).Error("failed to update category")
		return err
	}
	return nil
}

// DeleteCategory удаляет категорию вместе с её прямыми подкатегориями.
// Подкатегории второго уровня остаются с висячим ParentID.
func (s *Service) DeleteCategory(id string) error {
	if err := s.categories.Delete(id); err != nil {
		s.logger.WithError(err).WithField("category_id", id).Warn("failed to delete category")
		return err
	}
	return nil
}

// GetCategory возвращает одну категорию.
func (s *Service) GetCategory(id string) (domain.Category, error) {
	category, err := s.categories.GetByID(id)
	if err != nil {
		s.logger.WithError(err).WithField("category_id", id).Warn("failed to load category")
		return domain.Category{}, err
	}
	return category, nil
}

// GetCategoryTree возвращает все категории, собранные в дерево.
func (s *Service) GetCategoryTree() ([]domain.CategoryNode, error) {
	categories, err := s.categories.GetAll()
	if err != nil {
		s.logger.WithError(err).Error("failed to list categories")
		return nil, err
	}
	return domain.BuildCategoryTree(categories), nil
}

func (s *Service) validateProduct(input ProductInput) error {
	if input.Name == "" {
		return domain.ErrNameRequired
	}
	if input.Price.IsNegative() {
		return domain.ErrPriceNegative
	}
	if input.Stock < 0 {
		return domain.ErrStockNegative
	}
	return nil
}

func (s *Service) toProductView(product domain.Product) ProductView {
	view := ProductView{Product: product}
	if product.CategoryID == nil {
		return view
	}

	category, err := s.categories.GetByID(*product.CategoryID)
	if err != nil {
		// Висячая ссылка на категорию не валит чтение товара.
		s.logger.WithError(err).WithFields(log.Fields{
			"product_id":  product.ID,
			"category_id": *product.CategoryID,
		}).Warn("failed to resolve product category")
		return view
	}
	view.CategoryName = &category.Name
	return view
}
