package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/adtm0/smartbite/config"
	"github.com/adtm0/smartbite/models"
	"github.com/adtm0/smartbite/utils"

	"gorm.io/gorm"
)

// GormUserStore backs the OTP state machine and the auth flows with the
// shared database.
type GormUserStore struct{}

func (GormUserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SaveOtp writes both OTP columns in a single UPDATE so code and expiry are
// always set or cleared as a pair.
func (GormUserStore) SaveOtp(userID uint, code *string, expiry *time.Time) error {
	return config.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"otp_code": code, "otp_expiry": expiry}).Error
}

func (GormUserStore) EmailTaken(email string) (bool, error) {
	var count int64
	err := config.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (GormUserStore) Create(user *models.User) error {
	return config.DB.Create(user).Error
}

func (GormUserStore) UpdatePassword(userID uint, hash string) error {
	return config.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("password", hash).Error
}

type ProfileInput struct {
	Height   float64 `json:"height"`
	Sex      string  `json:"sex"`
	Birthday string  `json:"birthday"` // YYYY-MM-DD
}

func GetUserProfile(email string) (map[string]interface{}, error) {
	user, err := GormUserStore{}.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	birthday := ""
	age := 0
	if user.Birthday != nil {
		birthday = user.Birthday.Format("2006-01-02")
		age = utils.CalculateAge(*user.Birthday)
	}

	return map[string]interface{}{
		"id":       user.ID,
		"email":    user.Email,
		"height":   user.Height,
		"sex":      user.Sex,
		"birthday": birthday,
		"age":      age,
	}, nil
}

func UpdateUserProfile(email string, input ProfileInput) error {
	var birthday *time.Time
	if input.Birthday != "" {
		parsed, err := time.Parse("2006-01-02", input.Birthday)
		if err != nil {
			return fmt.Errorf("%w: invalid birthday %q, expected YYYY-MM-DD", ErrValidation, input.Birthday)
		}
		birthday = &parsed
	}

	user, err := GormUserStore{}.FindByEmail(email)
	if err != nil {
		return err
	}

	if input.Height > 0 {
		user.Height = input.Height
	}
	if input.Sex != "" {
		user.Sex = input.Sex
	}
	if birthday != nil {
		user.Birthday = birthday
	}

	return config.DB.Save(user).Error
}
