package get_packages

import (
	"context"

	"github.com/avoevodin/hall-booking-service/internal/service/catalog"
)

type CatalogService interface {
	ListActive(ctx context.Context) (*catalog.PackageListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
