package domain

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	// GetByID возвращает товар или ErrProductNotFound.
	GetByID(id string) (Product, error)
	// Add сохраняет новый товар.
	Add(product Product) error
	// ExistsByName сообщает, занято ли имя товара.
	ExistsByName(name string) (bool, error)
	// GetAll возвращает все товары.
	GetAll() ([]Product, error)
	// Delete удаляет товар по идентификатору.
	Delete(id string) error
	// Update перезаписывает товар.
	Update(product Product) error
	// DecreaseStock списывает qty единиц со склада товара.
	// Возвращает ErrInsufficientStock, если остатка не хватает.
	DecreaseStock(id string, qty int32) error
	// AssignCategory привязывает товар к категории.
	AssignCategory(productID, categoryID string) error
}

// CustomerRepository описывает требования к хранилищу покупателей.
type CustomerRepository interface {
	// GetByID возвращает покупателя или ErrCustomerNotFound.
	GetByID(id string) (Customer, error)
	// Add сохраняет нового покупателя.
	Add(customer Customer) error
	// ExistsByName сообщает, занято ли имя покупателя.
	ExistsByName(name string) (bool, error)
	// GetAll возвращает всех покупателей.
	GetAll() ([]Customer, error)
	// Delete удаляет покупателя по идентификатору.
	Delete(id string) error
	// Update перезаписывает покупателя.
	Update(customer Customer) error
}

// InvoiceRepository описывает требования к хранилищу счетов.
type InvoiceRepository interface {
	// GetAll возвращает все счета вместе с позициями.
	GetAll() ([]Invoice, error)
	// Add сохраняет счёт вместе с позициями как одно целое.
	Add(invoice Invoice) error
	// Delete удаляет счёт и каскадно его позиции.
	Delete(id string) error
	// Update перезаписывает счёт, полностью заменяя список позиций.
	Update(invoice Invoice) error
	// GetByID возвращает счёт с позициями или ErrInvoiceNotFound.
	GetByID(id string) (Invoice, error)
	// GetFiltered возвращает счета по необязательным условиям фильтра.
	GetFiltered(filter InvoiceFilter) ([]Invoice, error)
	// CustomerTotal агрегирует счета покупателя: количество и общая сумма.
	// Возвращает ErrNoInvoicesForCustomer, если счетов нет.
	CustomerTotal(customerID string) (CustomerTotal, error)
}

// InvoiceItemRepository описывает требования к хранилищу позиций счетов.
type InvoiceItemRepository interface {
	// AddRange сохраняет набор позиций.
	AddRange(items []InvoiceItem) error
	// Delete удаляет позицию по идентификатору.
	Delete(id string) error
	// GetByID возвращает позицию или ErrInvoiceItemNotFound.
	GetByID(id string) (InvoiceItem, error)
	// Update перезаписывает позицию.
	Update(item InvoiceItem) error
	// GetByInvoiceID возвращает позиции счёта в порядке добавления.
	GetByInvoiceID(invoiceID string) ([]InvoiceItem, error)
}

// CategoryRepository описывает требования к хранилищу категорий.
type CategoryRepository interface {
	// GetByID возвращает категорию или ErrCategoryNotFound.
	GetByID(id string) (Category, error)
	// Add сохраняет новую категорию.
	Add(category Category) error
	// ExistsByName сообщает, занято ли имя категории.
	ExistsByName(name string) (bool, error)
	// GetAll возвращает все категории плоским списком.
	GetAll() ([]Category, error)
	// Delete удаляет категорию и её прямых детей.
	// Внуки не затрагиваются и остаются с висячим ParentID.
	Delete(id string) error
	// Update перезаписывает категорию.
	Update(category Category) error
}

// UserRepository описывает требования к хранилищу пользователей.
type UserRepository interface {
	// GetByUserName возвращает пользователя по логину или ErrUserNotFound.
	GetByUserName(userName string) (User, error)
	// Add сохраняет нового пользователя.
	Add(user User) error
	// GetAll возвращает всех пользователей.
	GetAll() ([]User, error)
}

// StoreInfoRepository описывает требования к хранилищу записи о магазине.
type StoreInfoRepository interface {
	// Create сохраняет новую запись о магазине.
	Create(info StoreInfo) error
	// Get возвращает самую раннюю запись или ErrStoreInfoNotFound.
	Get() (StoreInfo, error)
	// GetByID возвращает запись по идентификатору или ErrStoreInfoNotFound.
	GetByID(id string) (StoreInfo, error)
	// Update перезаписывает запись.
	Update(info StoreInfo) error
}
