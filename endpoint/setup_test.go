package endpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/clinica/patients-api/config"
	"github.com/clinica/patients-api/middleware"
	"github.com/clinica/patients-api/model"
	"github.com/clinica/patients-api/util"
)

const testSecret = "test-secret-123"

func newTestConfig() *config.Config {
	return &config.Config{
		AppName:         "patients-api",
		AppEnv:          "test",
		JWTSecret:       testSecret,
		TokenTTLMinutes: 60,
	}
}

// setupEndpointTest returns a router with the full route table and an
// isolated in-memory database.
func setupEndpointTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Patient{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	r := gin.New()
	r.Use(middleware.ConfigMiddleware(newTestConfig()))
	r.Use(middleware.DatabaseMiddleware(db))

	r.GET("/health", Health)

	auth := r.Group("/auth")
	auth.POST("/register", Register)
	auth.POST("/login", Login)

	patients := r.Group("/patients")
	patients.Use(middleware.AuthRequired())
	patients.POST("", CreatePatient)
	patients.GET("", ListPatients)
	patients.GET("/:id", GetPatient)
	patients.PUT("/:id", UpdatePatient)
	patients.DELETE("/:id", DeletePatient)

	return r, db
}

func doJSONRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doFormRequest(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) util.APIResponse {
	t.Helper()
	var resp util.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, w.Body.String())
	}
	return resp
}

func dataMap(t *testing.T, resp util.APIResponse) map[string]interface{} {
	t.Helper()
	m, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	return m
}

func issueTestToken(t *testing.T, subject string) string {
	t.Helper()
	token, err := util.IssueToken([]byte(testSecret), subject, time.Hour)
	if err != nil {
		t.Fatalf("issue test token: %v", err)
	}
	return token
}

func seedPatient(t *testing.T, db *gorm.DB, name string, age int, symptoms ...string) model.Patient {
	t.Helper()
	patient := model.Patient{Name: name, Age: age, Symptoms: model.StringList(symptoms)}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	return patient
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(m).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}
