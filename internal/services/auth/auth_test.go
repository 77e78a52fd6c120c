package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	jwtauth "github.com/JonasLeetTheWay/clashon-go/internal/auth"
	"github.com/JonasLeetTheWay/clashon-go/internal/config"
	"github.com/JonasLeetTheWay/clashon-go/internal/models"
	"github.com/JonasLeetTheWay/clashon-go/internal/otp"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository/memory"
	"github.com/JonasLeetTheWay/clashon-go/internal/services/servicetest"
)

const (
	demoCode   = "123456"
	adminPhone = "9916444412"
)

type fixture struct {
	router *gin.Engine
	store  repository.Store
	codes  *otp.MemoryStore
}

func newFixture(t *testing.T, demo, adminAuth bool) fixture {
	t.Helper()
	cfg := &config.Config{
		DemoOTPMode:       demo,
		DemoOTP:           demoCode,
		AdminAuthRequired: adminAuth,
		JWTSecret:         "test-secret",
		JWTExpiry:         time.Hour,
	}
	store := memory.NewStore()
	if err := store.Admins.Create(context.Background(), &models.Admin{Phone: adminPhone, Name: "Admin", Role: models.RoleSuperAdmin}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	codes := otp.NewMemoryStore()
	otpService := otp.NewService(codes, otp.Options{DemoMode: demo, DemoCode: demoCode, TTL: 10 * time.Minute})

	r, api, _ := servicetest.Router()
	NewService(cfg, store, otpService).SetupRoutes(api)
	return fixture{router: r, store: store, codes: codes}
}

type loginResponse struct {
	Success bool          `json:"success"`
	IsAdmin *bool         `json:"is_admin"`
	Message string        `json:"message"`
	DemoOTP string        `json:"demo_otp"`
	User    *models.User  `json:"user"`
	Admin   *models.Admin `json:"admin"`
	Token   string        `json:"token"`
}

func TestCheckUserType(t *testing.T) {
	f := newFixture(t, true, false)
	if err := f.store.Users.Create(context.Background(), &models.User{Phone: "9000000001", Name: "Riya"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		phone    string
		wantType string
		wantName string
	}{
		{adminPhone, UserTypeAdmin, "Admin"},
		{"9000000001", UserTypeUser, "Riya"},
		{"9000000002", UserTypeNewUser, ""},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			w := servicetest.Do(t, f.router, http.MethodPost, "/api/auth/check-user-type", map[string]string{"phone": tt.phone})
			servicetest.Expect(t, w, http.StatusOK)
			var got struct {
				UserType string `json:"user_type"`
				Name     string `json:"name"`
			}
			servicetest.Decode(t, w, &got)
			if got.UserType != tt.wantType || got.Name != tt.wantName {
				t.Errorf("got %+v, want %s/%q", got, tt.wantType, tt.wantName)
			}
		})
	}

	w := servicetest.Do(t, f.router, http.MethodPost, "/api/auth/check-user-type", map[string]string{})
	servicetest.Expect(t, w, http.StatusBadRequest)
}

func TestRequestOTPDemoMode(t *testing.T) {
	f := newFixture(t, true, false)

	w := servicetest.Do(t, f.router, http.MethodPost, "/api/auth/request-otp", map[string]string{"phone": adminPhone})
	servicetest.Expect(t, w, http.StatusOK)
	var got loginResponse
	servicetest.Decode(t, w, &got)
	if got.IsAdmin == nil || !*got.IsAdmin {
		t.Errorf("admin phone: is_admin = %v", got.IsAdmin)
	}
	if _, err := f.codes.Get(context.Background(), otp.UserNamespace, adminPhone); err == nil {
		t.Error("admin phone should not get a user code")
	}

	w = servicetest.Do(t, f.router, http.MethodPost, "/api/auth/request-otp", map[string]string{"phone": "9000000001"})
	servicetest.Expect(t, w, http.StatusOK)
	got = loginResponse{}
	servicetest.Decode(t, w, &got)
	if got.IsAdmin == nil || *got.IsAdmin || got.DemoOTP != demoCode {
		t.Errorf("user phone: %+v", got)
	}
	if got.Message != "DEMO MODE: Use OTP 123456 to login" {
		t.Errorf("message = %q", got.Message)
	}
}

func TestVerifyOTPDemoMode(t *testing.T) {
	f := newFixture(t, true, false)
	phone := "9000000001"

	w := servicetest.Do(t, f.router, http.MethodPost, "/api/auth/verify-otp", map[string]string{"phone": phone, "otp": "000000", "name": "Riya"})
	servicetest.Expect(t, w, http.StatusBadRequest)
	if msg := servicetest.ErrorMessage(t, w); msg != "Invalid OTP. Use 123456 for demo" {
		t.Errorf("error = %q", msg)
	}

	var first loginResponse
	w = servicetest.Do(t, f.router, http.MethodPost, "/api/auth/verify-otp", map[string]string{"phone": phone, "otp": demoCode, "name": "Riya"})
	servicetest.Expect(t, w, http.StatusOK)
	servicetest.Decode(t, w, &first)
	if first.User == nil || first.User.Name != "Riya" || first.User.Phone != phone {
		t.Fatalf("first login user = %+v", first.User)
	}

	// Demo codes are reusable and a second login reuses the account.
	var second loginResponse
	w = servicetest.Do(t, f.router, http.MethodPost, "/api/auth/verify-otp", map[string]string{"phone": phone, "otp": demoCode, "name": "Riya"})
	servicetest.Expect(t, w, http.StatusOK)
	servicetest.Decode(t, w, &second)
	if second.User.ID != first.User.ID {
		t.Errorf("second login created user %s, want %s", second.User.ID, first.User.ID)
	}

	var renamed loginResponse
	w = servicetest.Do(t, f.router, http.MethodPost, "/api/auth/verify-otp", map[string]string{"phone": phone, "otp": demoCode, "name": "Riya S"})
	servicetest.Expect(t, w, http.StatusOK)
	servicetest.Decode(t, w, &renamed)
	if renamed.User.ID != first.User.ID || renamed.User.Name != "Riya S" {
		t.Errorf("renamed user = %+v", renamed.User)
	}

	if n, _ := f.store.Users.Count(context.Background()); n != 1 {
		t.Errorf("user count = %d, want 1", n)
	}
}

func TestVerifyOTPIssuedCode(t *testing.T) {
	f := newFixture(t, false, false)
	phone := "9000000003"
	ctx := context.Background()

	w := servicetest.Do(t, f.router, http.MethodPost, "/api/auth/request-otp", map[string]string{"phone": phone})
	servicetest.Expect(t, w, http.StatusOK)
	var got loginResponse
	servicetest.Decode(t, w, &got)
	if got.DemoOTP != "" {
		t.Errorf("demo_otp leaked outside demo mode: %q", got.DemoOTP)
	}

	rec, err := f.codes.Get(ctx, otp.UserNamespace, phone)
	if err != nil {
		t.Fatalf("issued code not stored: %v", err)
	}

	w = servicetest.Do(t, f.router, http.MethodPost, "/api/auth/verify-otp", map[string]string{"phone": phone, "otp": rec.OTP})
	servicetest.Expect(t, w, http.StatusOK)

	// A verified code cannot be used again.
	w = servicetest.Do(t, f.router, http.MethodPost, "/api/auth/verify-otp", map[string]string{"phone": phone, "otp": rec.OTP})
	servicetest.Expect(t, w, http.StatusBadRequest)
	if msg := servicetest.ErrorMessage(t, w); msg != "Invalid OTP" {
		t.Errorf("error = %q", msg)
	}
}

func TestAdminLogin(t *testing.T) {
	f := newFixture(t, true, false)

	w := servicetest.Do(t, f.router, http.MethodPost, "/api/admin/auth/request-otp", map[string]string{"phone": "9000000009"})
	servicetest.Expect(t, w, http.StatusOK)

	w = servicetest.Do(t, f.router, http.MethodPost, "/api/admin/auth/verify-otp", map[string]string{"phone": "9000000009", "otp": demoCode})
	servicetest.Expect(t, w, http.StatusForbidden)
	if msg := servicetest.ErrorMessage(t, w); msg != "Not authorized as admin" {
		t.Errorf("error = %q", msg)
	}

	w = servicetest.Do(t, f.router, http.MethodPost, "/api/admin/auth/verify-otp", map[string]string{"phone": adminPhone, "otp": demoCode})
	servicetest.Expect(t, w, http.StatusOK)
	var got loginResponse
	servicetest.Decode(t, w, &got)
	if got.Admin == nil || got.Admin.Role != models.RoleSuperAdmin {
		t.Errorf("admin = %+v", got.Admin)
	}
	if got.Token != "" {
		t.Error("token returned while admin auth is disabled")
	}
}

func TestAdminLoginIssuesToken(t *testing.T) {
	f := newFixture(t, true, true)

	w := servicetest.Do(t, f.router, http.MethodPost, "/api/admin/auth/verify-otp", map[string]string{"phone": adminPhone, "otp": demoCode})
	servicetest.Expect(t, w, http.StatusOK)
	var got loginResponse
	servicetest.Decode(t, w, &got)

	claims, err := jwtauth.ValidateToken(&config.Config{JWTSecret: "test-secret"}, got.Token)
	if err != nil {
		t.Fatalf("token does not validate: %v", err)
	}
	if claims.AdminID != got.Admin.ID || claims.Role != models.RoleSuperAdmin {
		t.Errorf("claims = %+v", claims)
	}
}

func TestProfile(t *testing.T) {
	f := newFixture(t, true, false)
	ctx := context.Background()
	a := &models.User{Phone: "9000000001", Name: "A"}
	b := &models.User{Phone: "9000000002", Name: "B"}
	for _, u := range []*models.User{a, b} {
		if err := f.store.Users.Create(ctx, u); err != nil {
			t.Fatal(err)
		}
	}

	servicetest.Expect(t, servicetest.Do(t, f.router, http.MethodGet, "/api/auth/user/"+a.ID, nil), http.StatusOK)
	servicetest.Expect(t, servicetest.Do(t, f.router, http.MethodGet, "/api/auth/user/missing", nil), http.StatusNotFound)

	tests := []struct {
		name string
		id   string
		body map[string]string
		want int
	}{
		{"rename", a.ID, map[string]string{"name": "Alpha"}, http.StatusOK},
		{"own phone", a.ID, map[string]string{"phone": a.Phone}, http.StatusOK},
		{"taken phone", a.ID, map[string]string{"phone": b.Phone}, http.StatusConflict},
		{"empty", a.ID, map[string]string{}, http.StatusBadRequest},
		{"missing user", "missing", map[string]string{"name": "x"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := servicetest.Do(t, f.router, http.MethodPut, "/api/auth/user/"+tt.id, tt.body)
			servicetest.Expect(t, w, tt.want)
		})
	}

	got, err := f.store.Users.ByID(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Alpha" || got.Phone != "9000000001" {
		t.Errorf("user = %+v", got)
	}
}
