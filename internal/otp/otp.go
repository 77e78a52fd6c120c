// Package otp issues and checks the one-time codes used by the user and
// admin login flows.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/JonasLeetTheWay/clashon-go/internal/models"
)

// Namespace keeps user and admin codes for the same phone apart.
type Namespace string

const (
	UserNamespace  Namespace = "otps"
	AdminNamespace Namespace = "admin_otps"
)

const CodeLength = 6

var (
	ErrNotFound    = errors.New("otp record not found")
	ErrInvalidCode = errors.New("invalid otp")
	ErrExpired     = errors.New("otp expired")
)

// Store persists at most one record per namespace and phone.
type Store interface {
	// Replace drops any earlier record for rec.Phone and stores rec.
	Replace(ctx context.Context, ns Namespace, rec models.OTPRecord) error
	// Get returns ErrNotFound when no live record exists.
	Get(ctx context.Context, ns Namespace, phone string) (*models.OTPRecord, error)
	MarkVerified(ctx context.Context, ns Namespace, phone string) error
}

type Options struct {
	DemoMode bool
	DemoCode string
	TTL      time.Duration
}

type Service struct {
	store Store
	opts  Options
	now   func() time.Time
}

func NewService(store Store, opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Minute
	}
	return &Service{store: store, opts: opts, now: time.Now}
}

func (s *Service) DemoMode() bool   { return s.opts.DemoMode }
func (s *Service) DemoCode() string { return s.opts.DemoCode }

// Issue stores a fresh record for phone and returns its code. In demo
// mode the code is always the configured demo code.
func (s *Service) Issue(ctx context.Context, ns Namespace, phone string) (string, error) {
	code := s.opts.DemoCode
	if !s.opts.DemoMode {
		var err error
		if code, err = randomCode(); err != nil {
			return "", err
		}
	}

	now := s.now().UTC()
	rec := models.OTPRecord{
		Phone:     phone,
		OTP:       code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.opts.TTL),
	}
	if err := s.store.Replace(ctx, ns, rec); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}
	return code, nil
}

// Verify checks code for phone. Demo mode accepts only the demo code and
// never consults the store. Otherwise the stored record must match, be
// unverified and unexpired; it is then marked verified.
func (s *Service) Verify(ctx context.Context, ns Namespace, phone, code string) error {
	if s.opts.DemoMode {
		if code != s.opts.DemoCode {
			return ErrInvalidCode
		}
		return nil
	}

	rec, err := s.store.Get(ctx, ns, phone)
	if errors.Is(err, ErrNotFound) {
		return ErrInvalidCode
	}
	if err != nil {
		return fmt.Errorf("failed to load otp: %w", err)
	}
	if rec.Verified || rec.OTP != code {
		return ErrInvalidCode
	}
	if rec.Expired(s.now().UTC()) {
		return ErrExpired
	}
	if err := s.store.MarkVerified(ctx, ns, phone); err != nil {
		return fmt.Errorf("failed to mark otp verified: %w", err)
	}
	return nil
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}
