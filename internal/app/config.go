package app

import (
	"os"
	"strings"
)

// Config описывает настройки запуска приложения.
type Config struct {
	// HTTPAddr — адрес основного JSON API.
	HTTPAddr string
	// MetricsAddr — адрес служебного сервера: метрики и health checks.
	MetricsAddr string
	// PostgresDSN включает PostgreSQL-хранилище. Пустое значение
	// означает работу на хранилище в памяти.
	PostgresDSN string
}

// DefaultConfig возвращает базовые адреса серверов.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}

// ConfigFromEnv строит конфигурацию из переменных окружения,
// начиная с значений по умолчанию.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := strings.TrimSpace(os.Getenv("ESHOP_HTTP_ADDR")); v != "" {
		cfg.HTTPAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("ESHOP_METRICS_ADDR")); v != "" {
		cfg.MetricsAddr = v
	}
	cfg.PostgresDSN = strings.TrimSpace(os.Getenv("ESHOP_POSTGRES_DSN"))
	return cfg
}
