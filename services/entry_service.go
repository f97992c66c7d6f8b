package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adtm0/smartbite/config"
	"github.com/adtm0/smartbite/models"
	"github.com/adtm0/smartbite/utils"

	"gorm.io/gorm"
)

const resolveTimeout = 10 * time.Second

type EntryService struct {
	resolver FoodProfileResolver
}

func NewEntryService(resolver FoodProfileResolver) *EntryService {
	return &EntryService{resolver: resolver}
}

type EntryInput struct {
	FdcID            string
	FoodName         string
	MealType         string
	NumberOfServings float64
	ServingSize      float64
	ServingSizeUnit  string
	EntryDate        time.Time
}

// EntryResponse carries the derived totals, not the stored baseline.
type EntryResponse struct {
	ID               uint    `json:"id"`
	FoodName         string  `json:"food_name"`
	FdcID            string  `json:"fdc_id,omitempty"`
	MealType         string  `json:"meal_type"`
	NumberOfServings float64 `json:"number_of_servings"`
	ServingSize      float64 `json:"serving_size"`
	ServingSizeUnit  string  `json:"serving_size_unit"`
	EntryDate        string  `json:"entry_date"`
	Calories         float64 `json:"calories"`
	Protein          float64 `json:"protein"`
	Fat              float64 `json:"fat"`
	Carbs            float64 `json:"carbs"`
}

func entryResponse(e *models.FoodEntry) EntryResponse {
	totals := e.TotalNutrients()
	return EntryResponse{
		ID:               e.ID,
		FoodName:         e.FoodName,
		FdcID:            e.FdcID,
		MealType:         e.MealType,
		NumberOfServings: e.NumberOfServings,
		ServingSize:      e.ServingSize,
		ServingSizeUnit:  e.ServingSizeUnit,
		EntryDate:        e.EntryDate.Format("2006-01-02"),
		Calories:         totals.Calories,
		Protein:          totals.Protein,
		Fat:              totals.Fat,
		Carbs:            totals.Carbs,
	}
}

// Create resolves the food profile and logs the entry. A resolver failure
// aborts creation with its typed error; there is no default profile. The
// stored baseline is the profile scaled once to the declared serving size;
// the servings factor is applied on every read.
func (s *EntryService) Create(ctx context.Context, userID uint, in EntryInput) (*EntryResponse, error) {
	if !models.ValidMealType(in.MealType) {
		return nil, fmt.Errorf("%w: unknown meal type %q", ErrValidation, in.MealType)
	}
	if in.NumberOfServings <= 0 {
		return nil, fmt.Errorf("%w: number_of_servings must be positive", ErrValidation)
	}
	if in.ServingSize <= 0 {
		return nil, fmt.Errorf("%w: serving_size must be positive", ErrValidation)
	}
	if in.FdcID == "" {
		return nil, fmt.Errorf("%w: fdc_id is required", ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()
	profile, err := s.resolver.Resolve(ctx, in.FdcID)
	if err != nil {
		return nil, err
	}

	name := in.FoodName
	if name == "" {
		name = profile.Name
	}

	baseline := utils.ScaleNutrients(profile.Nutrients, in.ServingSize, in.ServingSizeUnit, 1)

	entry := models.FoodEntry{
		UserID:           userID,
		FoodName:         name,
		FdcID:            in.FdcID,
		MealType:         in.MealType,
		NumberOfServings: in.NumberOfServings,
		ServingSize:      in.ServingSize,
		ServingSizeUnit:  in.ServingSizeUnit,
		Calories:         baseline.Calories,
		Protein:          baseline.Protein,
		Fat:              baseline.Fat,
		Carbs:            baseline.Carbs,
		EntryDate:        in.EntryDate,
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		return nil, err
	}

	resp := entryResponse(&entry)
	return &resp, nil
}

func (s *EntryService) List(userID uint, date *time.Time) ([]EntryResponse, error) {
	q := config.DB.
		Where("user_id = ?", userID).
		Order("entry_date DESC, created_at DESC")
	if date != nil {
		q = q.Where("entry_date = ?", date.Format("2006-01-02"))
	}

	var entries []models.FoodEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}

	out := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, entryResponse(&entries[i]))
	}
	return out, nil
}

type EntryUpdate struct {
	FoodName         *string  `json:"food_name"`
	MealType         *string  `json:"meal_type"`
	NumberOfServings *float64 `json:"number_of_servings"`
	ServingSize      *float64 `json:"serving_size"`
	ServingSizeUnit  *string  `json:"serving_size_unit"`
	EntryDate        *string  `json:"entry_date"` // YYYY-MM-DD
}

// Update mutates only the provided fields. The nutrient baseline is not
// re-derived, so changing serving fields shifts totals through both scaling
// passes (see models.FoodEntry.TotalNutrients).
func (s *EntryService) Update(userID, entryID uint, in EntryUpdate) (*EntryResponse, error) {
	var entry models.FoodEntry
	err := config.DB.
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	if in.FoodName != nil && *in.FoodName != "" {
		entry.FoodName = *in.FoodName
	}
	if in.MealType != nil {
		if !models.ValidMealType(*in.MealType) {
			return nil, fmt.Errorf("%w: unknown meal type %q", ErrValidation, *in.MealType)
		}
		entry.MealType = *in.MealType
	}
	if in.NumberOfServings != nil {
		if *in.NumberOfServings <= 0 {
			return nil, fmt.Errorf("%w: number_of_servings must be positive", ErrValidation)
		}
		entry.NumberOfServings = *in.NumberOfServings
	}
	if in.ServingSize != nil {
		if *in.ServingSize <= 0 {
			return nil, fmt.Errorf("%w: serving_size must be positive", ErrValidation)
		}
		entry.ServingSize = *in.ServingSize
	}
	if in.ServingSizeUnit != nil && *in.ServingSizeUnit != "" {
		entry.ServingSizeUnit = *in.ServingSizeUnit
	}
	if in.EntryDate != nil {
		date, err := time.Parse("2006-01-02", *in.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid entry_date %q", ErrValidation, *in.EntryDate)
		}
		entry.EntryDate = date
	}

	if err := config.DB.Save(&entry).Error; err != nil {
		return nil, err
	}

	resp := entryResponse(&entry)
	return &resp, nil
}

func (s *EntryService) Delete(userID, entryID uint) error {
	result := config.DB.
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.FoodEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

type DailySummary struct {
	Date    string          `json:"date"`
	Entries int             `json:"entries"`
	Totals  utils.Nutrients `json:"totals"`
}

// DailySummary sums the derived totals of a day's entries.
func (s *EntryService) DailySummary(userID uint, date time.Time) (*DailySummary, error) {
	entries, err := s.List(userID, &date)
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{Date: date.Format("2006-01-02"), Entries: len(entries)}
	for _, e := range entries {
		summary.Totals.Calories += e.Calories
		summary.Totals.Protein += e.Protein
		summary.Totals.Fat += e.Fat
		summary.Totals.Carbs += e.Carbs
	}
	return summary, nil
}
