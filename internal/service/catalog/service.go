package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/avoevodin/hall-booking-service/internal/domain"
)

var (
	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// PackageResponse DTO пакета каталога
type PackageResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description *string `json:"description,omitempty"`
}

// PackageListResponse ответ со списком пакетов
type PackageListResponse struct {
	Packages []PackageResponse `json:"packages"`
}

// Service сервис каталога пакетов
// Каталог справочный: расписание от него не зависит, бронирования хранят
// денормализованную копию названия и цены
type Service struct {
	packageRepo PackageRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(packageRepo PackageRepository, logger Logger) *Service {
	return &Service{
		packageRepo: packageRepo,
		logger:      logger,
	}
}

// ListActive возвращает активные пакеты в порядке сортировки каталога
func (s *Service) ListActive(ctx context.Context) (*PackageListResponse, error) {
	s.logger.Info("ListActive: fetching packages")

	packages, err := s.packageRepo.GetActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	result := &PackageListResponse{
		Packages: make([]PackageResponse, 0, len(packages)),
	}
	for _, p := range packages {
		result.Packages = append(result.Packages, fromDomainPackage(p))
	}

	s.logger.Info("ListActive: successfully fetched %d packages", len(result.Packages))
	return result, nil
}

func fromDomainPackage(p *domain.Package) PackageResponse {
	return PackageResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
	}
}
