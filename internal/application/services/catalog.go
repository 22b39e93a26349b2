package services

import (
	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
)

// CatalogService exposes the compiled-in price lists.
type CatalogService struct{}

func NewCatalogService() *CatalogService {
	return &CatalogService{}
}

func (s *CatalogService) InsurancePackages() []domain.InsurancePackage {
	return domain.InsurancePackages()
}

func (s *CatalogService) KilometerPackages() []domain.KilometerPackage {
	return domain.KilometerPackages()
}

func (s *CatalogService) VehicleCategories() []domain.VehicleCategory {
	return domain.VehicleCategories()
}

func (s *CatalogService) VehicleCategory(code string) (domain.VehicleCategory, error) {
	c, err := domain.VehicleCategoryFromCode(code)
	if err != nil {
		return domain.VehicleCategory{}, application.NewNotFoundError("vehicle category", code)
	}
	return c, nil
}
