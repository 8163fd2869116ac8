package domain

import (
	"fmt"
	"time"
)

// Address — неизменяемый value object адреса покупателя.
// Передаётся по значению; после конструирования не мутируется.
type Address struct {
	City       string
	Street     string
	PostalCode string
}

// NewAddress конструирует адрес.
func NewAddress(city, street, postalCode string) Address {
	return Address{City: city, Street: street, PostalCode: postalCode}
}

// String возвращает адрес в формате "улица, город, индекс".
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s", a.Street, a.City, a.PostalCode)
}

// Equal сравнивает адреса по значению.
func (a Address) Equal(other Address) bool {
	return a.City == other.City && a.Street == other.Street && a.PostalCode == other.PostalCode
}

// Customer представляет покупателя с адресом.
type Customer struct {
	ID        string
	Name      string
	Address   Address
	CreatedAt time.Time
}
