package utils

// Nutrients holds macro amounts: kcal for calories, grams for the rest.
type Nutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// ScaleNutrients converts a per-100g profile into absolute amounts for a
// serving: every field is multiplied by (grams / 100) * servings, unrounded.
// Zero or negative sizes and counts are not rejected here; the entry-creation
// boundary enforces positivity.
func ScaleNutrients(per100g Nutrients, servingSize float64, servingUnit string, servings float64) Nutrients {
	multiplier := ConvertToGrams(servingSize, servingUnit) / 100.0 * servings
	return Nutrients{
		Calories: per100g.Calories * multiplier,
		Protein:  per100g.Protein * multiplier,
		Fat:      per100g.Fat * multiplier,
		Carbs:    per100g.Carbs * multiplier,
	}
}
