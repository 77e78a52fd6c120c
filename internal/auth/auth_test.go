package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonasLeetTheWay/clashon-go/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour, AdminAuthRequired: true}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateToken(cfg, "admin-001", "9916444412", "superadmin")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateToken(cfg, token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.AdminID != "admin-001" || claims.Role != "superadmin" || claims.Phone != "9916444412" {
		t.Errorf("claims = %+v", claims)
	}

	other := &config.Config{JWTSecret: "other", JWTExpiry: time.Hour}
	if _, err := ValidateToken(other, token); err == nil {
		t.Error("token signed with another secret should not validate")
	}

	expired := &config.Config{JWTSecret: "test-secret", JWTExpiry: -time.Minute}
	stale, _ := GenerateToken(expired, "admin-001", "9916444412", "admin")
	if _, err := ValidateToken(cfg, stale); err == nil {
		t.Error("expired token should not validate")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc", "abc", false},
		{"bearer abc", "abc", false},
		{"Basic abc", "", true},
		{"Bearer ", "", true},
		{"abc", "", true},
	}
	for _, tt := range tests {
		got, err := ExtractTokenFromHeader(tt.header)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ExtractTokenFromHeader(%q) = %q, %v", tt.header, got, err)
		}
	}
}

func serve(check AccessCheck, header string) int {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", Middleware(check), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestMiddleware(t *testing.T) {
	cfg := testConfig()
	adminToken, _ := GenerateToken(cfg, "a1", "1", "admin")
	userToken, _ := GenerateToken(cfg, "u1", "2", "user")

	tests := []struct {
		name   string
		check  AccessCheck
		header string
		want   int
	}{
		{"allow all without header", AllowAll, "", http.StatusOK},
		{"token required, missing", RequireAdminToken(cfg), "", http.StatusForbidden},
		{"token required, garbage", RequireAdminToken(cfg), "Bearer nope", http.StatusForbidden},
		{"token required, wrong role", RequireAdminToken(cfg), "Bearer " + userToken, http.StatusForbidden},
		{"token required, admin", RequireAdminToken(cfg), "Bearer " + adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := serve(tt.check, tt.header); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCheckFor(t *testing.T) {
	open := &config.Config{}
	if got := serve(CheckFor(open), ""); got != http.StatusOK {
		t.Errorf("open admin surface returned %d", got)
	}
	if got := serve(CheckFor(testConfig()), ""); got != http.StatusForbidden {
		t.Errorf("gated admin surface returned %d", got)
	}
}
