package domain

import "time"

// StoreInfo — конфигурационная запись о магазине. Логически singleton:
// Get читает самую раннюю запись, хотя схема не ограничивает количество строк.
type StoreInfo struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Website   string
	CreatedAt time.Time
}
