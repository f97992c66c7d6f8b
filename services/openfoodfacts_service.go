package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/adtm0/smartbite/utils"
)

const defaultOpenFoodFactsBaseURL = "https://world.openfoodfacts.org"

// OpenFoodFactsService is the secondary, keyless food search source.
type OpenFoodFactsService struct {
	baseURL string
	client  *http.Client
}

func NewOpenFoodFactsService() *OpenFoodFactsService {
	return &OpenFoodFactsService{
		baseURL: defaultOpenFoodFactsBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type OpenFoodFactsFood struct {
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Nutrients utils.Nutrients `json:"nutrients"` // per 100 g
	Image     string          `json:"image"`
}

type offSearchResponse struct {
	Products []struct {
		ProductName string `json:"product_name"`
		Brands      string `json:"brands"`
		Nutriments  struct {
			EnergyKcal100g float64 `json:"energy-kcal_100g"`
			Energy100g     float64 `json:"energy_100g"`
			Carbs100g      float64 `json:"carbohydrates_100g"`
			Fat100g        float64 `json:"fat_100g"`
			Proteins100g   float64 `json:"proteins_100g"`
		} `json:"nutriments"`
		ImageFrontURL string `json:"image_front_url"`
	} `json:"products"`
}

// SearchFoods queries the legacy search endpoint and maps the nutriment keys
// into per-100g macro fields. Missing nutriments stay 0.
func (s *OpenFoodFactsService) SearchFoods(ctx context.Context, query string) ([]OpenFoodFactsFood, error) {
	params := url.Values{}
	params.Add("search_terms", query)
	params.Add("search_simple", "1")
	params.Add("action", "process")
	params.Add("json", "1")
	params.Add("page_size", "20")

	reqURL := fmt.Sprintf("%s/cgi/search.pl?%s", s.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenFoodFacts request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenFoodFacts response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var sr offSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse OpenFoodFacts JSON: %w", err)
	}

	foods := make([]OpenFoodFactsFood, 0, len(sr.Products))
	for _, p := range sr.Products {
		calories := p.Nutriments.EnergyKcal100g
		if calories == 0 {
			calories = p.Nutriments.Energy100g
		}
		foods = append(foods, OpenFoodFactsFood{
			Name:  p.ProductName,
			Brand: p.Brands,
			Nutrients: utils.Nutrients{
				Calories: calories,
				Protein:  p.Nutriments.Proteins100g,
				Fat:      p.Nutriments.Fat100g,
				Carbs:    p.Nutriments.Carbs100g,
			},
			Image: p.ImageFrontURL,
		})
	}
	return foods, nil
}
