package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Драйверы хранилища.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool
	// MetricsAddr — адрес HTTP-сервера метрик; пустая строка отключает его.
	MetricsAddr string
}

// DefaultConfig возвращает конфигурацию локального запуска без внешних
// зависимостей: данные живут в памяти, метрики выключены.
func DefaultConfig() Config {
	return Config{
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		MetricsAddr:         "",
	}
}

// LoadConfig читает .env (если есть) и переменные окружения с префиксом
// SHOPDESK_, накладывая их поверх значений по умолчанию.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if v := envValue("SHOPDESK_STORAGE_DRIVER"); v != "" {
		cfg.StorageDriver = v
	}
	if v := envValue("SHOPDESK_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := envValue("SHOPDESK_POSTGRES_AUTO_MIGRATE"); v != "" {
		cfg.PostgresAutoMigrate = v != "false" && v != "0"
	}
	if v := envValue("SHOPDESK_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	return cfg
}

func envValue(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
