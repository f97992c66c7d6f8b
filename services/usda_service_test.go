package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adtm0/smartbite/config"
)

func newTestUSDAService(serverURL string) *USDAService {
	return NewUSDAService(config.FoodDataConfig{APIKey: "test-key", BaseURL: serverURL})
}

func TestUSDAService_Resolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/food/1102702", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Write([]byte(`{
			"description": "Apples, red delicious, with skin, raw",
			"foodNutrients": [
				{"nutrient": {"name": "Energy"}, "amount": 52},
				{"nutrient": {"name": "Protein"}, "amount": 0.3},
				{"nutrient": {"name": "Total lipid (fat)"}, "amount": 0.2},
				{"nutrient": {"name": "Carbohydrate, by difference"}, "amount": 14},
				{"nutrient": {"name": "Fiber, total dietary"}, "amount": 2.4}
			]
		}`))
	}))
	defer server.Close()

	svc := newTestUSDAService(server.URL)
	profile, err := svc.Resolve(context.Background(), "1102702")
	require.NoError(t, err)

	assert.Equal(t, "1102702", profile.FdcID)
	assert.Equal(t, "Apples, red delicious, with skin, raw", profile.Name)
	assert.InDelta(t, 52, profile.Nutrients.Calories, 1e-9)
	assert.InDelta(t, 0.3, profile.Nutrients.Protein, 1e-9)
	assert.InDelta(t, 0.2, profile.Nutrients.Fat, 1e-9)
	assert.InDelta(t, 14, profile.Nutrients.Carbs, 1e-9)
}

func TestUSDAService_Resolve_MissingNutrientsZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"description": "Water", "foodNutrients": []}`))
	}))
	defer server.Close()

	svc := newTestUSDAService(server.URL)
	profile, err := svc.Resolve(context.Background(), "99")
	require.NoError(t, err)

	assert.Zero(t, profile.Nutrients.Calories)
	assert.Zero(t, profile.Nutrients.Protein)
	assert.Zero(t, profile.Nutrients.Fat)
	assert.Zero(t, profile.Nutrients.Carbs)
}

func TestUSDAService_Resolve_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := newTestUSDAService(server.URL)
	_, err := svc.Resolve(context.Background(), "0")

	assert.ErrorIs(t, err, ErrFoodNotFound)
}

func TestUSDAService_Resolve_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"description": "Rice", "foodNutrients": [{"nutrient": {"name": "Energy"}, "amount": 130}]}`))
	}))
	defer server.Close()

	svc := newTestUSDAService(server.URL)
	profile, err := svc.Resolve(context.Background(), "5")
	require.NoError(t, err)

	assert.Equal(t, 3, attempts)
	assert.InDelta(t, 130, profile.Nutrients.Calories, 1e-9)
}

func TestUSDAService_Resolve_GivesUpAfterThreeAttempts(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestUSDAService(server.URL)
	_, err := svc.Resolve(context.Background(), "5")

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Equal(t, 3, attempts)
}

func TestUSDAService_Resolve_CancelledDuringBackoff(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	// The deadline lands inside the first retry delay, so the wait is cut
	// short instead of running the remaining attempts.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	svc := newTestUSDAService(server.URL)
	_, err := svc.Resolve(ctx, "5")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, attempts)
}

func TestUSDAService_MissingAPIKey(t *testing.T) {
	svc := NewUSDAService(config.FoodDataConfig{})

	_, err := svc.Resolve(context.Background(), "1")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	_, err = svc.SearchFoods(context.Background(), "apple")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestUSDAService_SearchFoods(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/foods/search", r.URL.Path)
		assert.Equal(t, "apple", r.URL.Query().Get("query"))
		assert.Equal(t, "Foundation,Survey (FNDDS),SR Legacy", r.URL.Query().Get("dataType"))
		assert.Equal(t, "50", r.URL.Query().Get("pageSize"))
		w.Write([]byte(`{"foods": [
			{"fdcId": 3, "description": "Apple pie", "dataType": "SR Legacy"},
			{"fdcId": 1, "description": "Apples, raw", "dataType": "Foundation"},
			{"fdcId": 2, "description": "Apple juice", "dataType": "Survey (FNDDS)", "servingSize": 240, "servingSizeUnit": "ml"}
		]}`))
	}))
	defer server.Close()

	svc := newTestUSDAService(server.URL)
	results, err := svc.SearchFoods(context.Background(), "apple")
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Foundation first, then Survey, then the rest.
	assert.Equal(t, "1", results[0].FdcID)
	assert.Equal(t, "2", results[1].FdcID)
	assert.Equal(t, "3", results[2].FdcID)

	// Missing serving fields default to 100 g.
	assert.InDelta(t, 100, results[0].ServingSize, 1e-9)
	assert.Equal(t, "g", results[0].ServingSizeUnit)
	assert.InDelta(t, 240, results[1].ServingSize, 1e-9)
	assert.Equal(t, "ml", results[1].ServingSizeUnit)
}

func TestUSDAService_SearchFoods_EmptyQuery(t *testing.T) {
	svc := newTestUSDAService("http://unused.invalid")

	_, err := svc.SearchFoods(context.Background(), "")

	assert.ErrorIs(t, err, ErrValidation)
}
