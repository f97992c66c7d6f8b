package models

import (
	"gorm.io/gorm"

	"github.com/adtm0/smartbite/utils"
)

// A locally curated food with per-100g nutrient values.
type FoodItem struct {
	gorm.Model
	Name            string `gorm:"uniqueIndex;not null"`
	CaloriesPer100g float64
	ProteinPer100g  float64
	FatPer100g      float64
	CarbsPer100g    float64
}

// NutrientsForServing scales the per-100g values to the given serving using
// the catalog conversion path, where an unknown unit counts as grams.
func (f *FoodItem) NutrientsForServing(servingSize float64, servingUnit string) utils.Nutrients {
	grams := utils.ConvertItemToGrams(servingSize, servingUnit)
	multiplier := grams / 100.0
	return utils.Nutrients{
		Calories: f.CaloriesPer100g * multiplier,
		Protein:  f.ProteinPer100g * multiplier,
		Fat:      f.FatPer100g * multiplier,
		Carbs:    f.CarbsPer100g * multiplier,
	}
}
