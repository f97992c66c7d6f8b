package services

import (
	"errors"

	"github.com/adtm0/smartbite/config"
	"github.com/adtm0/smartbite/models"
	"github.com/adtm0/smartbite/utils"

	"gorm.io/gorm"
)

// FoodService serves the locally curated catalog.
type FoodService struct{}

func (FoodService) SearchItems(query string) ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := config.DB.
		Where("name ILIKE ?", "%"+query+"%").
		Order("name ASC").
		Find(&items).Error
	return items, err
}

type ItemPreview struct {
	Name        string          `json:"name"`
	ServingSize float64         `json:"serving_size"`
	ServingUnit string          `json:"serving_unit"`
	Nutrients   utils.Nutrients `json:"nutrients"`
}

// ServingPreview converts a catalog item's per-100g values to the requested
// serving. This path treats unknown units as grams (factor 1), unlike diary
// entries.
func (FoodService) ServingPreview(name string, servingSize float64, servingUnit string) (*ItemPreview, error) {
	var item models.FoodItem
	if err := config.DB.First(&item, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}

	return &ItemPreview{
		Name:        item.Name,
		ServingSize: servingSize,
		ServingUnit: servingUnit,
		Nutrients:   item.NutrientsForServing(servingSize, servingUnit),
	}, nil
}
