package catalog

import "github.com/vladislavdragonenkov/eshop/internal/domain"

// ProductView — товар с развёрнутым именем категории. CategoryName
// остаётся nil, когда категория не назначена или её ссылка висячая.
type ProductView struct {
	domain.Product
	CategoryName *string
}
