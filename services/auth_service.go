package services

import (
	"errors"
	"fmt"

	"github.com/adtm0/smartbite/models"
	"github.com/adtm0/smartbite/utils"
)

const minPasswordLength = 6

// AuthStore extends the OTP persistence seam with the account operations the
// auth flows need.
type AuthStore interface {
	UserStore
	EmailTaken(email string) (bool, error)
	Create(user *models.User) error
	UpdatePassword(userID uint, hash string) error
}

type AuthService struct {
	store AuthStore
	otp   *OtpService
}

func NewAuthService(store AuthStore, otp *OtpService) *AuthService {
	return &AuthService{store: store, otp: otp}
}

// Signup creates the account and dispatches a verification OTP. The account
// exists even when mail delivery fails; the caller can request a new code.
func (s *AuthService) Signup(email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	taken, err := s.store.EmailTaken(email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{Email: email, Password: hashed}
	if err := s.store.Create(&user); err != nil {
		return err
	}

	_, err = s.otp.Issue(email)
	return err
}

// Login checks credentials and returns a signed token. Verification of the
// signup OTP proves address ownership but does not gate login.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.store.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateJWT(user.Email)
}

func (s *AuthService) RequestOtp(email string) error {
	_, err := s.otp.Issue(email)
	return err
}

func (s *AuthService) VerifyOtp(email, code string) error {
	return s.otp.Verify(email, code)
}

// RequestPasswordReset reissues the account OTP with the reset template.
// Any pending code is overwritten in place.
func (s *AuthService) RequestPasswordReset(email string) error {
	_, err := s.otp.IssueReset(email)
	return err
}

// ResetPassword verifies the reset code through the same OTP state machine
// (which clears it on success) and then replaces the password hash.
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	if err := s.otp.Verify(email, code); err != nil {
		return err
	}

	user, err := s.store.FindByEmail(email)
	if err != nil {
		return err
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.store.UpdatePassword(user.ID, hashed)
}
