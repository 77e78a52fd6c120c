package user

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/JonasLeetTheWay/clashon-go/internal/models"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository/memory"
	"github.com/JonasLeetTheWay/clashon-go/internal/services/servicetest"
)

func newRouter() (*gin.Engine, repository.Store) {
	store := memory.NewStore()
	r, _, admin := servicetest.Router()
	NewService(store).SetupRoutes(admin)
	return r, store
}

func createUser(t *testing.T, r http.Handler, phone, name, email string) models.User {
	t.Helper()
	body := map[string]string{"phone": phone, "name": name}
	if email != "" {
		body["email"] = email
	}
	w := servicetest.Do(t, r, http.MethodPost, "/api/admin/users", body)
	servicetest.Expect(t, w, http.StatusOK)
	var u models.User
	servicetest.Decode(t, w, &u)
	return u
}

func TestCreateUserRejectsDuplicatePhone(t *testing.T) {
	r, _ := newRouter()
	createUser(t, r, "9000000001", "Riya", "")

	w := servicetest.Do(t, r, http.MethodPost, "/api/admin/users", map[string]string{"phone": "9000000001", "name": "Other"})
	servicetest.Expect(t, w, http.StatusConflict)
	if msg := servicetest.ErrorMessage(t, w); msg != "User with this phone already exists" {
		t.Errorf("error = %q", msg)
	}
}

func TestSearchUsers(t *testing.T) {
	r, _ := newRouter()
	createUser(t, r, "9000000001", "Riya Sharma", "riya@example.com")
	createUser(t, r, "9111111111", "Arjun", "arjun@example.com")

	tests := []struct {
		search string
		want   int
	}{
		{"", 2},
		{"riya", 1},
		{"SHARMA", 1},
		{"91111", 1},
		{"example.com", 2},
		{"nobody", 0},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			w := servicetest.Do(t, r, http.MethodGet, "/api/admin/users?search="+tt.search, nil)
			servicetest.Expect(t, w, http.StatusOK)
			var got []models.User
			servicetest.Decode(t, w, &got)
			if len(got) != tt.want {
				t.Errorf("got %d users, want %d", len(got), tt.want)
			}
		})
	}
}

func TestUserStats(t *testing.T) {
	r, store := newRouter()
	ctx := context.Background()
	u := createUser(t, r, "9000000001", "Riya", "")

	for i, status := range []models.BookingStatus{models.StatusConfirmed, models.StatusCompleted, models.StatusCompleted} {
		b := &models.Booking{VenueID: "v", UserID: u.ID, TotalPrice: float64(100 * (i + 1)), Status: string(status)}
		if err := store.Bookings.Create(ctx, b); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Bookings.Create(ctx, &models.Booking{VenueID: "v", UserID: "someone-else", TotalPrice: 999}); err != nil {
		t.Fatal(err)
	}
	if err := store.Videos.Create(ctx, &models.Video{UserID: u.ID}); err != nil {
		t.Fatal(err)
	}

	w := servicetest.Do(t, r, http.MethodGet, "/api/admin/users/"+u.ID+"/stats", nil)
	servicetest.Expect(t, w, http.StatusOK)
	var got struct {
		User              models.User      `json:"user"`
		TotalBookings     int64            `json:"total_bookings"`
		CompletedBookings int64            `json:"completed_bookings"`
		TotalSpent        float64          `json:"total_spent"`
		TotalVideos       int64            `json:"total_videos"`
		RecentBookings    []models.Booking `json:"recent_bookings"`
	}
	servicetest.Decode(t, w, &got)

	if got.User.ID != u.ID || got.TotalBookings != 3 || got.CompletedBookings != 2 || got.TotalSpent != 600 || got.TotalVideos != 1 {
		t.Errorf("stats = %+v", got)
	}
	if len(got.RecentBookings) != 3 {
		t.Errorf("recent bookings = %d, want 3", len(got.RecentBookings))
	}

	servicetest.Expect(t, servicetest.Do(t, r, http.MethodGet, "/api/admin/users/missing/stats", nil), http.StatusNotFound)
}

func TestUpdateAndDeleteUser(t *testing.T) {
	r, _ := newRouter()
	a := createUser(t, r, "9000000001", "A", "")
	b := createUser(t, r, "9000000002", "B", "")

	w := servicetest.Do(t, r, http.MethodPut, "/api/admin/users/"+a.ID, map[string]string{"phone": b.Phone})
	servicetest.Expect(t, w, http.StatusConflict)
	if msg := servicetest.ErrorMessage(t, w); msg != "Phone number already in use" {
		t.Errorf("error = %q", msg)
	}

	w = servicetest.Do(t, r, http.MethodPut, "/api/admin/users/"+a.ID, map[string]string{"email": "a@example.com"})
	servicetest.Expect(t, w, http.StatusOK)
	var updated models.User
	servicetest.Decode(t, w, &updated)
	if updated.Email == nil || *updated.Email != "a@example.com" || updated.Name != "A" {
		t.Errorf("updated = %+v", updated)
	}

	servicetest.Expect(t, servicetest.Do(t, r, http.MethodDelete, "/api/admin/users/"+a.ID, nil), http.StatusOK)
	servicetest.Expect(t, servicetest.Do(t, r, http.MethodGet, "/api/admin/users/"+a.ID, nil), http.StatusNotFound)
	servicetest.Expect(t, servicetest.Do(t, r, http.MethodDelete, "/api/admin/users/"+a.ID, nil), http.StatusNotFound)
}

func TestAdminAccounts(t *testing.T) {
	r, _ := newRouter()

	w := servicetest.Do(t, r, http.MethodPost, "/api/admin/admins", map[string]string{"phone": "9000000001", "name": "Ops"})
	servicetest.Expect(t, w, http.StatusOK)
	var ops models.Admin
	servicetest.Decode(t, w, &ops)
	if ops.Role != models.RoleAdmin {
		t.Errorf("default role = %q", ops.Role)
	}

	w = servicetest.Do(t, r, http.MethodPost, "/api/admin/admins", map[string]string{"phone": "9000000002", "name": "Root", "role": "superadmin"})
	servicetest.Expect(t, w, http.StatusOK)
	var root models.Admin
	servicetest.Decode(t, w, &root)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"duplicate phone", http.MethodPost, "/api/admin/admins", map[string]string{"phone": "9000000001", "name": "Again"}, http.StatusConflict},
		{"unknown role", http.MethodPost, "/api/admin/admins", map[string]string{"phone": "9000000003", "name": "X", "role": "owner"}, http.StatusBadRequest},
		{"empty update", http.MethodPut, "/api/admin/admins/" + ops.ID, map[string]string{}, http.StatusBadRequest},
		{"phone conflict", http.MethodPut, "/api/admin/admins/" + ops.ID, map[string]string{"phone": root.Phone}, http.StatusConflict},
		{"promote", http.MethodPut, "/api/admin/admins/" + ops.ID, map[string]string{"role": "superadmin"}, http.StatusOK},
		{"update missing", http.MethodPut, "/api/admin/admins/missing", map[string]string{"name": "x"}, http.StatusNotFound},
		{"delete", http.MethodDelete, "/api/admin/admins/" + root.ID, nil, http.StatusOK},
		{"delete again", http.MethodDelete, "/api/admin/admins/" + root.ID, nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			servicetest.Expect(t, servicetest.Do(t, r, tt.method, tt.path, tt.body), tt.want)
		})
	}

	var admins []models.Admin
	servicetest.Decode(t, servicetest.Do(t, r, http.MethodGet, "/api/admin/admins", nil), &admins)
	if len(admins) != 1 || admins[0].ID != ops.ID || admins[0].Role != models.RoleSuperAdmin {
		t.Errorf("admins = %+v", admins)
	}
}
