// Package gate implements the shared-device passcode check and the
// device-local "who is using the app" selection. It is a deterrent, not a
// security boundary: the code is a static value with no lockout.
package gate

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/fastygo/alphadate/domain"
	"github.com/fastygo/alphadate/repository"
)

// Token is issued after a successful unlock.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Config struct {
	Code     string
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

type UseCase struct {
	cfg         Config
	currentUser repository.CurrentUserRepository
	logger      *zap.Logger
	now         func() time.Time
}

func New(cfg Config, currentUser repository.CurrentUserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &UseCase{
		cfg:         cfg,
		currentUser: currentUser,
		logger:      logger,
		now:         time.Now,
	}
}

// Unlock checks a full code and returns a signed token on a match.
func (uc *UseCase) Unlock(ctx context.Context, code string) (*Token, error) {
	if !uc.enter(code) {
		uc.logger.Info("passcode rejected")
		return nil, domain.ErrWrongPasscode
	}
	now := uc.now()
	expires := now.Add(uc.cfg.TokenTTL)
	claims := jwt.RegisteredClaims{
		Issuer:    uc.cfg.Issuer,
		Subject:   "device",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.cfg.Secret))
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "sign token", err)
	}
	return &Token{Value: signed, ExpiresAt: expires}, nil
}

// enter types code into a fresh keypad. Only a code of exactly CodeLength
// digits whose last press grants access is accepted.
func (uc *UseCase) enter(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	k := NewKeypad(uc.cfg.Code)
	outcome := Pending
	for _, d := range code {
		outcome = k.Press(d)
	}
	return outcome == Granted
}

func (uc *UseCase) CurrentUser(ctx context.Context) (domain.User, error) {
	return uc.currentUser.Get(ctx)
}

func (uc *UseCase) SelectUser(ctx context.Context, raw string) (domain.User, error) {
	user, err := domain.ParseUser(raw)
	if err != nil {
		return "", err
	}
	if err := uc.currentUser.Set(ctx, user); err != nil {
		return "", err
	}
	return user, nil
}

func (uc *UseCase) ClearUser(ctx context.Context) error {
	return uc.currentUser.Clear(ctx)
}
