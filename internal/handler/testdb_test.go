package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Aarbaz/perfect-management/internal/models"
	"github.com/Aarbaz/perfect-management/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.User{}, &models.Vehicle{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestRepo(t *testing.T) *repository.VehicleRepository {
	t.Helper()
	return repository.NewVehicleRepository(newTestDB(t))
}

func seedVehicle(t *testing.T, repo *repository.VehicleRepository, vt models.VehicleType, number, amount string, status models.PaymentStatus, date string) *models.Vehicle {
	t.Helper()
	d, err := models.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	v := &models.Vehicle{
		VehicleType:   vt,
		VehicleNumber: number,
		CustomerName:  "Asha Patel",
		MobileNumber:  "9998887776",
		Amount:        decimal.RequireFromString(amount),
		PaymentStatus: status,
		EntryDate:     d,
	}
	if err := repo.Create(v); err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return v
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func doRequest(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope is the standard response wrapper every endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return env
}
