package domain

import "errors"

var (
	// ErrProductNotFound возвращается, если товар не найден в репозитории.
	ErrProductNotFound = errors.New("product not found")
	// ErrCustomerNotFound возвращается, если покупатель не найден.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrInvoiceNotFound возвращается, если счёт не найден.
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrInvoiceItemNotFound возвращается, если позиция счёта не найдена.
	ErrInvoiceItemNotFound = errors.New("invoice item not found")
	// ErrCategoryNotFound возвращается, если категория не найдена.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrStoreInfoNotFound возвращается, если запись о магазине отсутствует.
	ErrStoreInfoNotFound = errors.New("store info not found")
	// ErrNoInvoicesForCustomer — у покупателя нет ни одного счёта;
	// отчёт по суммам построить не из чего.
	ErrNoInvoicesForCustomer = errors.New("customer has no invoices")

	// ErrInsufficientStock — запрошенное количество превышает остаток на складе.
	ErrInsufficientStock = errors.New("not enough stock available")

	// ErrNameRequired — обязательное имя не заполнено.
	ErrNameRequired = errors.New("name is required")
	// ErrNameTaken — сущность с таким именем уже существует.
	ErrNameTaken = errors.New("name is already taken")
	// ErrUserNameTaken — логин уже занят другим пользователем.
	ErrUserNameTaken = errors.New("username is already taken")
	// ErrSelfParentCategory — категория не может быть родителем самой себя.
	ErrSelfParentCategory = errors.New("category cannot be its own parent")

	// Ошибка отсутствующего идентификатора покупателя в счёте.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка при некорректном количестве в позиции счёта (<= 0).
	ErrItemQtyInvalid = errors.New("item quantity must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item unit price must be non-negative")
	// Ошибка отрицательной цены товара.
	ErrPriceNegative = errors.New("product price must be non-negative")
	// Ошибка отрицательного остатка товара.
	ErrStockNegative = errors.New("product stock must be non-negative")

	// ErrCredentialsRequired — логин и пароль обязательны при регистрации.
	ErrCredentialsRequired = errors.New("username and password are required")
	// ErrInvalidCredentials — неверная пара логин/пароль.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAdminRequired — операция доступна только администратору.
	ErrAdminRequired = errors.New("only admins can perform this operation")

	// ErrPaymentMethodUnknown — неизвестный способ оплаты.
	ErrPaymentMethodUnknown = errors.New("unknown payment method")
	// ErrInvoiceStatusUnknown — неизвестный статус счёта.
	ErrInvoiceStatusUnknown = errors.New("unknown invoice status")
)

// IsNotFound проверяет, относится ли ошибка к классу "сущность не найдена".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrInvoiceNotFound) ||
		errors.Is(err, ErrInvoiceItemNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrStoreInfoNotFound) ||
		errors.Is(err, ErrNoInvoicesForCustomer)
}

// IsConflict проверяет, является ли ошибка конфликтом уникальности.
func IsConflict(err error) bool {
	return errors.Is(err, ErrNameTaken) || errors.Is(err, ErrUserNameTaken)
}
