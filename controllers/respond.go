package controllers

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/adtm0/smartbite/config"
	"github.com/adtm0/smartbite/services"
	"github.com/adtm0/smartbite/utils"

	"github.com/gin-gonic/gin"
)

// Shared food-data clients. The resolver cache and the rate limiter must
// outlive individual requests, so these are built once.
var (
	foodOnce     sync.Once
	foodResolver services.FoodProfileResolver
	usdaSvc      *services.USDAService
)

func foodClients() (services.FoodProfileResolver, *services.USDAService) {
	foodOnce.Do(func() {
		usdaSvc = services.NewUSDAService(config.App.FoodData)
		foodResolver = services.NewCachingResolver(usdaSvc, 30*time.Minute)
	})
	return foodResolver, usdaSvc
}

func newAuthService() (*services.AuthService, error) {
	mailer, err := utils.NewSESMailer()
	if err != nil {
		return nil, err
	}
	otp := services.NewOtpService(services.GormUserStore{}, mailer)
	return services.NewAuthService(services.GormUserStore{}, otp), nil
}

// respondError maps service sentinel errors onto HTTP statuses. Unknown
// errors are logged with context and surfaced as a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrOtpExpired),
		errors.Is(err, services.ErrOtpMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrEntryNotFound),
		errors.Is(err, services.ErrFoodNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUpstreamUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Printf("[%s %s] internal error: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
