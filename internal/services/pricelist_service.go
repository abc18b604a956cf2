package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"salon_backend/internal/models"
	"salon_backend/internal/repositories"
)

// --- Custom Service Errors for the price list ---
var (
	ErrServiceNotFound = errors.New("service not found")
	ErrValidation      = errors.New("validation error") // Generic validation error
)

// --- ServiceCatalogService Interface ---
type ServiceCatalogService interface {
	GetServices(ctx context.Context) ([]models.Service, error)
	UpdateServicePrice(ctx context.Context, id models.ServiceType, price float64) (*models.Service, error)
}

// --- serviceCatalogService Implementation ---
type serviceCatalogService struct {
	services *repositories.Collection[models.Service]
	latency  time.Duration
}

// NewServiceCatalogService creates the price list facade.
func NewServiceCatalogService(services *repositories.Collection[models.Service], latency time.Duration) ServiceCatalogService {
	return &serviceCatalogService{services: services, latency: latency}
}

func (s *serviceCatalogService) GetServices(ctx context.Context) ([]models.Service, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}
	return s.services.All(ctx), nil
}

// UpdateServicePrice changes the price of one service. Other rows are left
// as they are; an unknown id leaves the collection untouched.
func (s *serviceCatalogService) UpdateServicePrice(ctx context.Context, id models.ServiceType, price float64) (*models.Service, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return nil, fmt.Errorf("%w: price must be a non-negative number", ErrValidation)
	}
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	var updated models.Service
	err := s.services.Mutate(ctx, func(items []models.Service) ([]models.Service, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].Price = price
				updated = items[i]
				return items, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
