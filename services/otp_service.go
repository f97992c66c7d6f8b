package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/adtm0/smartbite/models"
	"github.com/adtm0/smartbite/utils"
)

const otpTTL = 10 * time.Minute

// Mailer delivers short-lived codes to an email address. Failures must
// propagate so the caller can distinguish them from state-machine outcomes.
type Mailer interface {
	SendOtpEmail(to, code string) error
	SendResetEmail(to, code string) error
}

// UserStore is the slice of persistence the OTP state machine needs.
// SaveOtp must write both columns in one statement so code and expiry stay
// paired.
type UserStore interface {
	FindByEmail(email string) (*models.User, error)
	SaveOtp(userID uint, code *string, expiry *time.Time) error
}

// otpLocks serializes issue/verify/clear per email across all OtpService
// instances. Without it two concurrent verifies could both observe a valid
// code before either clears it. Entries are never evicted, so the map grows
// by one mutex per distinct email seen; acceptable while the account set
// stays small.
var otpLocks sync.Map

func lockFor(email string) *sync.Mutex {
	mu, _ := otpLocks.LoadOrStore(email, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

type OtpService struct {
	store  UserStore
	mailer Mailer
	now    func() time.Time
}

func NewOtpService(store UserStore, mailer Mailer) *OtpService {
	return &OtpService{store: store, mailer: mailer, now: time.Now}
}

// Issue generates a fresh code, persists it with a 10-minute expiry and
// mails it. Reissuing overwrites any pending code in place. The code is
// saved before the mail goes out: a delivery failure leaves a valid code
// behind and surfaces as an upstream error, so a later resend simply
// replaces it.
func (s *OtpService) Issue(email string) (string, error) {
	return s.issue(email, s.mailer.SendOtpEmail)
}

// IssueReset is Issue with the password-reset mail template.
func (s *OtpService) IssueReset(email string) (string, error) {
	return s.issue(email, s.mailer.SendResetEmail)
}

func (s *OtpService) issue(email string, deliver func(to, code string) error) (string, error) {
	mu := lockFor(email)
	mu.Lock()
	defer mu.Unlock()

	user, err := s.store.FindByEmail(email)
	if err != nil {
		return "", err
	}

	code, err := utils.GenerateOtpCode()
	if err != nil {
		return "", err
	}
	expiry := s.now().Add(otpTTL)
	if err := s.store.SaveOtp(user.ID, &code, &expiry); err != nil {
		return "", err
	}

	if err := deliver(email, code); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return code, nil
}

// Verify checks a submitted code. Mismatch and expiry leave the stored code
// untouched so the client can retry within the window or reissue; only a
// successful match clears the fields. The expiry is compared a second time
// after the code match: a code that lapses between the two checks reports
// expired, never verified.
func (s *OtpService) Verify(email, submitted string) error {
	mu := lockFor(email)
	mu.Lock()
	defer mu.Unlock()

	user, err := s.store.FindByEmail(email)
	if err != nil {
		return err
	}

	if user.OtpCode == nil || user.OtpExpiry == nil {
		return ErrOtpMismatch
	}
	if !user.OtpExpiry.After(s.now()) {
		return ErrOtpExpired
	}
	if *user.OtpCode != submitted {
		return ErrOtpMismatch
	}
	if !user.OtpExpiry.After(s.now()) {
		return ErrOtpExpired
	}

	return s.store.SaveOtp(user.ID, nil, nil)
}

// Clear drops any pending code unconditionally.
func (s *OtpService) Clear(email string) error {
	mu := lockFor(email)
	mu.Lock()
	defer mu.Unlock()

	user, err := s.store.FindByEmail(email)
	if err != nil {
		return err
	}
	return s.store.SaveOtp(user.ID, nil, nil)
}
