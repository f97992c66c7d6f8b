package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/adtm0/smartbite/config"

	"golang.org/x/time/rate"
)

const defaultUSDABaseURL = "https://api.nal.usda.gov/fdc"

// USDAService talks to the USDA FoodData Central API. The credentials come
// in as an explicit config struct; an empty API key makes every call fail as
// upstream-unavailable rather than degrading silently.
type USDAService struct {
	cfg     config.FoodDataConfig
	client  *http.Client
	limiter *rate.Limiter
}

func NewUSDAService(cfg config.FoodDataConfig) *USDAService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultUSDABaseURL
	}
	// USDA allows 1000 requests per hour: 1000/3600 ≈ 0.278 req/s.
	limiter := rate.NewLimiter(rate.Limit(0.278), 10)

	return &USDAService{
		cfg:     cfg,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: limiter,
	}
}

type usdaNutrientDetail struct {
	Nutrient struct {
		Name string `json:"name"`
	} `json:"nutrient"`
	Amount float64 `json:"amount"`
}

type usdaFoodDetail struct {
	Description   string               `json:"description"`
	FoodNutrients []usdaNutrientDetail `json:"foodNutrients"`
}

// Resolve fetches a food's detail record and normalizes the upstream
// nutrient names into the four canonical per-100g fields. Nutrients absent
// from the response stay 0.
func (s *USDAService) Resolve(ctx context.Context, fdcID string) (*FoodProfile, error) {
	body, err := s.get(ctx, fmt.Sprintf("/v1/food/%s", url.PathEscape(fdcID)), url.Values{})
	if err != nil {
		return nil, err
	}

	var detail usdaFoodDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("failed to parse USDA food JSON: %w", err)
	}

	profile := &FoodProfile{FdcID: fdcID, Name: detail.Description}
	for _, n := range detail.FoodNutrients {
		switch n.Nutrient.Name {
		case "Energy":
			profile.Nutrients.Calories = n.Amount
		case "Protein":
			profile.Nutrients.Protein = n.Amount
		case "Total lipid (fat)":
			profile.Nutrients.Fat = n.Amount
		case "Carbohydrate, by difference":
			profile.Nutrients.Carbs = n.Amount
		}
	}
	return profile, nil
}

type FoodSearchResult struct {
	FdcID           string  `json:"fdc_id"`
	Name            string  `json:"name"`
	Brand           string  `json:"brand"`
	DataType        string  `json:"data_type"`
	ServingSize     float64 `json:"serving_size"`
	ServingSizeUnit string  `json:"serving_size_unit"`
}

type usdaSearchResponse struct {
	Foods []struct {
		FdcID           json.Number `json:"fdcId"`
		Description     string      `json:"description"`
		BrandOwner      string      `json:"brandOwner"`
		DataType        string      `json:"dataType"`
		ServingSize     float64     `json:"servingSize"`
		ServingSizeUnit string      `json:"servingSizeUnit"`
	} `json:"foods"`
}

// SearchFoods queries the search endpoint, preferring Foundation and Survey
// records over branded ones, and fills the 100g/"g" serving defaults for
// records that omit them.
func (s *USDAService) SearchFoods(ctx context.Context, query string) ([]FoodSearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}

	params := url.Values{}
	params.Add("query", query)
	params.Add("dataType", "Foundation,Survey (FNDDS),SR Legacy")
	params.Add("pageSize", "50")

	body, err := s.get(ctx, "/v1/foods/search", params)
	if err != nil {
		return nil, err
	}

	var sr usdaSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse USDA search JSON: %w", err)
	}

	results := make([]FoodSearchResult, 0, len(sr.Foods))
	for _, f := range sr.Foods {
		r := FoodSearchResult{
			FdcID:           f.FdcID.String(),
			Name:            f.Description,
			Brand:           f.BrandOwner,
			DataType:        f.DataType,
			ServingSize:     f.ServingSize,
			ServingSizeUnit: f.ServingSizeUnit,
		}
		if r.ServingSize == 0 {
			r.ServingSize = 100
		}
		if r.ServingSizeUnit == "" {
			r.ServingSizeUnit = "g"
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return dataTypeRank(results[i].DataType) < dataTypeRank(results[j].DataType)
	})
	return results, nil
}

func dataTypeRank(dt string) int {
	switch dt {
	case "Foundation":
		return 0
	case "Survey (FNDDS)":
		return 1
	default:
		return 2
	}
}

// get runs a rate-limited GET against the API, retrying transient server
// errors up to three times.
func (s *USDAService) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if s.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: USDA API key not configured", ErrUpstreamUnavailable)
	}

	params.Set("api_key", s.cfg.APIKey)
	reqURL := fmt.Sprintf("%s%s?%s", s.cfg.BaseURL, path, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create USDA request: %w", err)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("[USDA] request error (attempt %d): %v", attempt, err)
			lastErr = fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
			if err := sleepBackoff(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, ErrFoodNotFound
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			log.Printf("[USDA] API error (attempt %d) status %d: %s", attempt, resp.StatusCode, string(body))
			lastErr = fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
			if err := sleepBackoff(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		default:
			return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
		}
	}
	return nil, lastErr
}

func backoff(attempt int) time.Duration {
	return time.Duration(attempt) * 500 * time.Millisecond
}

// sleepBackoff waits out the retry delay but returns early if the request
// context is cancelled.
func sleepBackoff(ctx context.Context, attempt int) error {
	timer := time.NewTimer(backoff(attempt))
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
