package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/adtm0/smartbite/utils"
)

const (
	MealBreakfast = "Breakfast"
	MealLunch     = "Lunch"
	MealDinner    = "Dinner"
	MealSnack     = "Snack"
)

func ValidMealType(t string) bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// One logged food. The nutrient columns hold the resolved per-100g profile
// scaled once to ServingSize/ServingSizeUnit at creation time; the servings
// factor is never stored. Totals are always derived via TotalNutrients.
type FoodEntry struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null"`
	FoodName string `gorm:"not null"`
	FdcID    string `gorm:"type:varchar(50)"` // USDA FoodData Central ID

	MealType         string `gorm:"type:varchar(20);not null"`
	NumberOfServings float64
	ServingSize      float64
	ServingSizeUnit  string `gorm:"type:varchar(20)"`

	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64

	EntryDate time.Time `gorm:"type:date;index"`
}

// TotalNutrients rescales the stored baseline by the unit-to-gram ratio and
// the servings count. The baseline already includes one serving-size pass,
// so the ratio is applied twice in total; editing ServingSize or the unit
// without re-resolving the profile shifts totals through both passes. This
// matches the shipped behavior and is pinned by tests.
func (e *FoodEntry) TotalNutrients() utils.Nutrients {
	baseline := utils.Nutrients{
		Calories: e.Calories,
		Protein:  e.Protein,
		Fat:      e.Fat,
		Carbs:    e.Carbs,
	}
	return utils.ScaleNutrients(baseline, e.ServingSize, e.ServingSizeUnit, e.NumberOfServings)
}
