package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"salon_reports_backend/internal/models"
	"salon_reports_backend/internal/repositories/memstore"
	"salon_reports_backend/internal/services"
	"salon_reports_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := services.HashPassword("manager-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	store := memstore.New()
	store.AddUser(models.User{Username: "manager", PasswordHash: hash, IsActive: true}, models.RoleManager)
	store.AddUser(models.User{Username: "desk", PasswordHash: hash, IsActive: true}, models.RoleStaff)
	store.AddStylists(models.Stylist{ID: "s1", FirstName: "Anna", LastName: "Smith", IsActive: true})
	store.AddAppointments(models.Appointment{
		ID: "a1", DateTime: time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC),
		Status: models.AppointmentStatusCompleted, Price: 80, Duration: 60,
		Stylist: &models.StylistRef{ID: "s1", FirstName: "Anna", LastName: "Smith"},
	})

	tokens, err := utils.NewTokenManager("router-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}

	engine := gin.New()
	Setup(engine, Dependencies{
		ReportRepo: store,
		AuthRepo:   store,
		Tokens:     tokens,
		DataSource: "memory",
		ReportOptions: []services.ReportServiceOption{
			services.WithClock(func() time.Time { return time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC) }),
		},
	})
	return engine
}

func request(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler, username string) string {
	t.Helper()
	w := request(r, http.MethodPost, "/api/auth/login", "", `{"username":"`+username+`","password":"manager-pass"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d (%s)", username, w.Code, w.Body.String())
	}
	var resp services.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return resp.AccessToken
}

func TestReportFlow(t *testing.T) {
	r := newTestServer(t)
	token := login(t, r, "manager")

	w := request(r, http.MethodPost, "/api/reports/comprehensive", token, `{"filters":{"period":"month"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("report status = %d (%s)", w.Code, w.Body.String())
	}
	var body struct {
		Success bool          `json:"success"`
		Report  models.Report `json:"report"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Report.Revenue.TotalRevenue != 80 || body.Report.Summary.TopPerformingStylist != "Anna Smith" {
		t.Fatalf("unexpected report: %s", w.Body.String())
	}

	w = request(r, http.MethodPost, "/api/reports/comprehensive/export", token, `{}`)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != services.ExcelContentType {
		t.Fatalf("export status = %d, type = %s", w.Code, w.Header().Get("Content-Type"))
	}

	w = request(r, http.MethodGet, "/api/auth/me", token, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"username":"manager"`) {
		t.Fatalf("me: %d %s", w.Code, w.Body.String())
	}
}

func TestReportRoutesRequireAuthorizedRole(t *testing.T) {
	r := newTestServer(t)

	if w := request(r, http.MethodPost, "/api/reports/comprehensive", "", `{}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d", w.Code)
	}

	staff := login(t, r, "desk")
	if w := request(r, http.MethodPost, "/api/reports/comprehensive", staff, `{}`); w.Code != http.StatusForbidden {
		t.Fatalf("staff status = %d", w.Code)
	}
}

func TestPublicRoutes(t *testing.T) {
	r := newTestServer(t)

	for _, path := range []string{"/ping", "/healthz", "/readyz", "/api/reports/comprehensive"} {
		if w := request(r, http.MethodGet, path, "", ""); w.Code != http.StatusOK {
			t.Fatalf("GET %s = %d", path, w.Code)
		}
	}

	w := request(r, http.MethodPost, "/api/auth/login", "", `{"username":"manager","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", w.Code)
	}
}
