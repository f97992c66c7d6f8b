package routes

import (
	"github.com/adtm0/smartbite/controllers"
	"github.com/adtm0/smartbite/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/otp/request", controllers.RequestOtp)
		auth.POST("/otp/verify", controllers.VerifyOtp)
		auth.POST("/password/forgot", controllers.ForgotPassword)
		auth.POST("/password/reset", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
	}

	// Protected food lookup routes
	food := r.Group("/food")
	food.Use(middlewares.AuthMiddleware())
	{
		food.GET("/search", controllers.SearchFoods)
		food.GET("/openfoodfacts", controllers.SearchOpenFoodFacts)
		food.GET("/items", controllers.SearchFoodItems)
		food.GET("/items/preview", controllers.FoodItemPreview)
		food.GET("/:fdcId", controllers.GetFoodDetails)
	}

	// Protected diary routes
	entries := r.Group("/entries")
	entries.Use(middlewares.AuthMiddleware())
	{
		entries.POST("", controllers.CreateEntry)
		entries.GET("", controllers.ListEntries)
		entries.GET("/summary", controllers.DailySummary)
		entries.PUT("/:id", controllers.UpdateEntry)
		entries.DELETE("/:id", controllers.DeleteEntry)
	}

	return r
}
