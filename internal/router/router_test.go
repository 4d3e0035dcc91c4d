package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindmend/internal/db"
	"github.com/mindmend/internal/handler"
	"github.com/mindmend/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouterTest(t *testing.T) (*gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.Entry{}, &db.SystemSetting{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.DB = gdb

	api := handler.NewAPI(gdb, service.SystemSettings{AffirmationProvider: service.AffirmationProviderLocal}, time.Second)
	r := SetupRouter(api, "")

	return r, func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestSetupRouterPing(t *testing.T) {
	r, cleanup := setupRouterTest(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestRouterEntryRoutesDoNotConflict(t *testing.T) {
	r, cleanup := setupRouterTest(t)
	defer cleanup()

	payload := map[string]any{"date": "2024-01-15", "moodValue": 55, "text": "routed entry"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/entries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// 静态段 /entries/dates/:date 与参数段 /entries/:id 需要同时可达
	byDate := httptest.NewRecorder()
	r.ServeHTTP(byDate, httptest.NewRequest(http.MethodGet, "/entries/dates/2024-01-15", nil))
	if byDate.Code != http.StatusOK {
		t.Fatalf("expected status 200 for date route, got %d", byDate.Code)
	}

	byID := httptest.NewRecorder()
	r.ServeHTTP(byID, httptest.NewRequest(http.MethodGet, "/entries/"+created.ID, nil))
	if byID.Code != http.StatusOK {
		t.Fatalf("expected status 200 for id route, got %d", byID.Code)
	}
}

func TestRouterWipeRouteOnlyInTestMode(t *testing.T) {
	r, cleanup := setupRouterTest(t)
	defer cleanup()

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/dev/entries", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected wipe route in test mode, got %d", rr.Code)
	}
}
