package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adtm0/smartbite/models"
	"github.com/adtm0/smartbite/utils"
)

func (s *fakeUserStore) EmailTaken(email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) Create(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = uint(len(s.users) + 1)
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) UpdatePassword(userID uint, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.Password = hash
	return nil
}

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeMailer) {
	store := newFakeUserStore()
	mailer := &fakeMailer{}
	otp := NewOtpService(store, mailer)
	return NewAuthService(store, otp), store, mailer
}

func TestAuthService_SignupValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing email", "", "secret1"},
		{"missing password", "a@x.com", ""},
		{"short password", "a@x.com", "five5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, mailer := newTestAuthService()

			err := svc.Signup(tt.email, tt.password)

			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, store.users)
			assert.Empty(t, mailer.otpSent)
		})
	}
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	require.NoError(t, svc.Signup("a@x.com", "secret1"))

	err := svc.Signup("a@x.com", "another1")

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_SignupVerifyLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc, store, mailer := newTestAuthService()

	require.NoError(t, svc.Signup("a@x.com", "secret1"))

	// Account exists with a bcrypt hash, never the plaintext password.
	u := store.get(1)
	assert.Equal(t, "a@x.com", u.Email)
	assert.NotEqual(t, "secret1", u.Password)
	assert.True(t, utils.CheckPasswordHash("secret1", u.Password))

	// The signup OTP was dispatched and verifies cleanly.
	require.Len(t, mailer.otpSent, 1)
	require.NoError(t, svc.VerifyOtp("a@x.com", mailer.otpSent[0]))

	token, err := svc.Login("a@x.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthService_LoginBadCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService()
	require.NoError(t, svc.Signup("a@x.com", "secret1"))

	_, err := svc.Login("a@x.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown accounts report the same error as a bad password.
	_, err = svc.Login("nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ResetPasswordFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc, _, mailer := newTestAuthService()
	require.NoError(t, svc.Signup("a@x.com", "secret1"))

	require.NoError(t, svc.RequestPasswordReset("a@x.com"))
	require.Len(t, mailer.resetSent, 1)

	require.NoError(t, svc.ResetPassword("a@x.com", mailer.resetSent[0], "fresh-pass"))

	_, err := svc.Login("a@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := svc.Login("a@x.com", "fresh-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthService_ResetPasswordWrongCode(t *testing.T) {
	svc, _, mailer := newTestAuthService()
	require.NoError(t, svc.Signup("a@x.com", "secret1"))
	require.NoError(t, svc.RequestPasswordReset("a@x.com"))

	wrong := "000000"
	if wrong == mailer.resetSent[0] {
		wrong = "000001"
	}
	err := svc.ResetPassword("a@x.com", wrong, "fresh-pass")

	assert.ErrorIs(t, err, ErrOtpMismatch)

	// The old password still works.
	_, err = svc.Login("a@x.com", "secret1")
	assert.NoError(t, err)
}

func TestAuthService_ResetPasswordTooShort(t *testing.T) {
	svc, _, mailer := newTestAuthService()
	require.NoError(t, svc.Signup("a@x.com", "secret1"))
	require.NoError(t, svc.RequestPasswordReset("a@x.com"))

	err := svc.ResetPassword("a@x.com", mailer.resetSent[0], "tiny")

	assert.ErrorIs(t, err, ErrValidation)

	// The reset code is still pending; the short password never reached the
	// verify step.
	assert.NoError(t, svc.ResetPassword("a@x.com", mailer.resetSent[0], "fresh-pass"))
}
