package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product представляет товар каталога с ценой и складским остатком.
type Product struct {
	ID   string
	Name string
	// Price — цена за единицу; остаётся справочной и не влияет на цены
	// в уже выставленных счетах (там цена снимается снапшотом).
	Price decimal.Decimal
	// Stock — остаток на складе, никогда не уходит в минус.
	Stock int32
	// CategoryID — необязательная привязка к категории.
	CategoryID  *string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DecreaseStock списывает quantity единиц со склада.
// Возвращает ErrInsufficientStock, если остатка не хватает.
func (p *Product) DecreaseStock(quantity int32) error {
	if quantity > p.Stock {
		return ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

// IncreaseStock безусловно пополняет остаток.
// Публичный метод сущности; сервисами сейчас не вызывается.
func (p *Product) IncreaseStock(amount int32) {
	p.Stock += amount
}

// ValidateInvariants проверяет базовые инварианты товара и возвращает список замечаний.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, ErrNameRequired)
	}
	if p.Price.IsNegative() {
		errs = append(errs, ErrPriceNegative)
	}
	if p.Stock < 0 {
		errs = append(errs, ErrStockNegative)
	}

	return errs
}
