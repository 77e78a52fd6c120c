package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JonasLeetTheWay/clashon-go/internal/models"
)

// staticStore returns a fixed record regardless of expiry.
type staticStore struct {
	rec      *models.OTPRecord
	verified int
}

func (s *staticStore) Replace(context.Context, Namespace, models.OTPRecord) error { return nil }

func (s *staticStore) Get(context.Context, Namespace, string) (*models.OTPRecord, error) {
	if s.rec == nil {
		return nil, ErrNotFound
	}
	rec := *s.rec
	return &rec, nil
}

func (s *staticStore) MarkVerified(context.Context, Namespace, string) error {
	s.verified++
	return nil
}

func TestDemoModeAcceptsOnlyDemoCode(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewService(store, Options{DemoMode: true, DemoCode: "123456"})

	code, err := svc.Issue(ctx, UserNamespace, "9000000001")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if code != "123456" {
		t.Errorf("Issue() = %q, want demo code", code)
	}
	if _, err := store.Get(ctx, UserNamespace, "9000000001"); err != nil {
		t.Errorf("record was not stored: %v", err)
	}

	tests := []struct {
		code string
		want error
	}{
		{"123456", nil},
		{"123456", nil},
		{"000000", ErrInvalidCode},
		{"", ErrInvalidCode},
	}
	for _, tt := range tests {
		if err := svc.Verify(ctx, UserNamespace, "9000000001", tt.code); !errors.Is(err, tt.want) {
			t.Errorf("Verify(%q) = %v, want %v", tt.code, err, tt.want)
		}
	}
}

func TestDemoModeIgnoresStore(t *testing.T) {
	svc := NewService(&staticStore{}, Options{DemoMode: true, DemoCode: "123456"})
	if err := svc.Verify(context.Background(), AdminNamespace, "never-requested", "123456"); err != nil {
		t.Errorf("Verify() = %v, want nil without a stored record", err)
	}
}

func TestStoredCodeFlow(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), Options{TTL: time.Minute})

	code, err := svc.Issue(ctx, UserNamespace, "9000000002")
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != CodeLength {
		t.Fatalf("Issue() = %q, want %d digits", code, CodeLength)
	}

	if err := svc.Verify(ctx, AdminNamespace, "9000000002", code); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("code leaked across namespaces: %v", err)
	}
	wrong := "999999"
	if code == wrong {
		wrong = "888888"
	}
	if err := svc.Verify(ctx, UserNamespace, "9000000002", wrong); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("Verify(wrong) = %v", err)
	}
	if err := svc.Verify(ctx, UserNamespace, "9000000002", code); err != nil {
		t.Errorf("Verify(code) = %v", err)
	}
	if err := svc.Verify(ctx, UserNamespace, "9000000002", code); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("second Verify(code) = %v, want ErrInvalidCode", err)
	}
}

func TestIssueReplacesEarlierCode(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewService(store, Options{TTL: time.Minute})

	if _, err := svc.Issue(ctx, UserNamespace, "9000000003"); err != nil {
		t.Fatal(err)
	}
	second, err := svc.Issue(ctx, UserNamespace, "9000000003")
	if err != nil {
		t.Fatal(err)
	}
	rec, err := store.Get(ctx, UserNamespace, "9000000003")
	if err != nil {
		t.Fatal(err)
	}
	if rec.OTP != second || rec.Verified {
		t.Errorf("stored record = %+v, want latest unverified code %q", rec, second)
	}
}

func TestExpiredRecord(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &staticStore{rec: &models.OTPRecord{
		Phone:     "9000000004",
		OTP:       "424242",
		CreatedAt: now.Add(-11 * time.Minute),
		ExpiresAt: now.Add(-time.Minute),
	}}
	svc := NewService(store, Options{TTL: 10 * time.Minute})
	svc.now = func() time.Time { return now }

	if err := svc.Verify(context.Background(), UserNamespace, "9000000004", "424242"); !errors.Is(err, ErrExpired) {
		t.Errorf("Verify() = %v, want ErrExpired", err)
	}
	if store.verified != 0 {
		t.Error("expired record must not be marked verified")
	}
}

func TestMemoryStoreDropsExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	_ = store.Replace(ctx, UserNamespace, models.OTPRecord{Phone: "p", OTP: "1", ExpiresAt: now.Add(-time.Second)})
	if _, err := store.Get(ctx, UserNamespace, "p"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() = %v, want ErrNotFound", err)
	}
	if err := store.MarkVerified(ctx, UserNamespace, "p"); !errors.Is(err, ErrNotFound) {
		t.Errorf("MarkVerified() = %v, want ErrNotFound", err)
	}
}
