package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/adtm0/smartbite/services"

	"github.com/gin-gonic/gin"
)

type CreateEntryInput struct {
	FdcID            string  `json:"fdc_id" binding:"required"`
	FoodName         string  `json:"food_name"`
	MealType         string  `json:"meal_type" binding:"required"`
	NumberOfServings float64 `json:"number_of_servings" binding:"required"`
	ServingSize      float64 `json:"serving_size" binding:"required"`
	ServingSizeUnit  string  `json:"serving_size_unit" binding:"required"`
	EntryDate        string  `json:"entry_date"` // YYYY-MM-DD, defaults to today
}

func CreateEntry(c *gin.Context) {
	var input CreateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entryDate := time.Now()
	if input.EntryDate != "" {
		var err error
		entryDate, err = time.Parse("2006-01-02", input.EntryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry_date, expected YYYY-MM-DD"})
			return
		}
	}

	resolver, _ := foodClients()
	svc := services.NewEntryService(resolver)

	entry, err := svc.Create(c.Request.Context(), c.GetUint("userID"), services.EntryInput{
		FdcID:            input.FdcID,
		FoodName:         input.FoodName,
		MealType:         input.MealType,
		NumberOfServings: input.NumberOfServings,
		ServingSize:      input.ServingSize,
		ServingSizeUnit:  input.ServingSizeUnit,
		EntryDate:        entryDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func ListEntries(c *gin.Context) {
	var date *time.Time
	if ds := c.Query("date"); ds != "" {
		parsed, err := time.Parse("2006-01-02", ds)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		date = &parsed
	}

	resolver, _ := foodClients()
	svc := services.NewEntryService(resolver)

	entries, err := svc.List(c.GetUint("userID"), date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func UpdateEntry(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	var input services.EntryUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resolver, _ := foodClients()
	svc := services.NewEntryService(resolver)

	entry, err := svc.Update(c.GetUint("userID"), uint(entryID), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func DeleteEntry(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	resolver, _ := foodClients()
	svc := services.NewEntryService(resolver)

	if err := svc.Delete(c.GetUint("userID"), uint(entryID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}

func DailySummary(c *gin.Context) {
	ds := c.Query("date")
	date := time.Now()
	if ds != "" {
		var err error
		date, err = time.Parse("2006-01-02", ds)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
	}

	resolver, _ := foodClients()
	svc := services.NewEntryService(resolver)

	summary, err := svc.DailySummary(c.GetUint("userID"), date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
