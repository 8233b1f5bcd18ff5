package service

import (
	"testing"

	"github.com/Aarbaz/perfect-management/internal/models"
	"github.com/Aarbaz/perfect-management/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func seedVehicle(t *testing.T, repo *repository.VehicleRepository, vt models.VehicleType, amount string, status models.PaymentStatus, date string) {
	t.Helper()
	v := &models.Vehicle{
		VehicleType:   vt,
		VehicleNumber: "GJ01AB1234",
		CustomerName:  "Asha Patel",
		MobileNumber:  "9998887776",
		Amount:        decimal.RequireFromString(amount),
		PaymentStatus: status,
		EntryDate:     mustDate(t, date),
	}
	if err := repo.Create(v); err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
}
