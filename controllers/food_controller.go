package controllers

import (
	"net/http"
	"strconv"

	"github.com/adtm0/smartbite/services"

	"github.com/gin-gonic/gin"
)

// GET /food/search?query=apple
func SearchFoods(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}

	_, usda := foodClients()
	results, err := usda.SearchFoods(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// GET /food/openfoodfacts?query=apple
func SearchOpenFoodFacts(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}

	svc := services.NewOpenFoodFactsService()
	foods, err := svc.SearchFoods(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, foods)
}

// GET /food/:fdcId
func GetFoodDetails(c *gin.Context) {
	resolver, _ := foodClients()
	profile, err := resolver.Resolve(c.Request.Context(), c.Param("fdcId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GET /food/items?q=rice
func SearchFoodItems(c *gin.Context) {
	items, err := services.FoodService{}.SearchItems(c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// GET /food/items/preview?name=Rice&size=150&unit=g
func FoodItemPreview(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name parameter is required"})
		return
	}

	size, err := strconv.ParseFloat(c.DefaultQuery("size", "100"), 64)
	if err != nil || size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be a positive number"})
		return
	}
	unit := c.DefaultQuery("unit", "g")

	preview, err := services.FoodService{}.ServingPreview(name, size, unit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}
