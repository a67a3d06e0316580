package catalog

import (
	"context"

	"github.com/avoevodin/hall-booking-service/internal/domain"
)

// PackageRepository интерфейс репозитория каталога пакетов
type PackageRepository interface {
	GetActive(ctx context.Context) ([]*domain.Package, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
