package utils

import "strings"

// Gram equivalents for common serving labels. The volume and piece values are
// approximations shared with the original product; they are constants, not
// tunables.
var gramFactors = map[string]float64{
	"g":       1,
	"kg":      1000,
	"oz":      28.3495,
	"lb":      453.592,
	"cup":     128,
	"tbsp":    15,
	"tsp":     5,
	"serving": 100,
	"medium":  100,
	"large":   150,
	"small":   50,
	"item":    100,
	"egg":     50,
	"unit":    100,
}

// ConvertToGrams maps a diary serving to grams. The unit match is
// case-insensitive and an unknown unit falls back to 100 g, i.e. one generic
// serving-equivalent. The fallback is silent: diary writes favor availability
// over unit validation.
func ConvertToGrams(amount float64, unit string) float64 {
	if factor, ok := gramFactors[strings.ToLower(unit)]; ok {
		return amount * factor
	}
	return amount * 100
}

// ConvertItemToGrams maps a catalog serving to grams. Unlike the diary path,
// an unknown unit here is treated as already being grams (factor 1). The two
// defaults differ on purpose: catalog previews assume gram inputs, diary
// entries assume serving-sized inputs. Do not unify them.
func ConvertItemToGrams(amount float64, unit string) float64 {
	if factor, ok := gramFactors[strings.ToLower(unit)]; ok {
		return amount * factor
	}
	return amount
}
