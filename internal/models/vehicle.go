package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// amounts serialize as JSON numbers, matching the API contract
	decimal.MarshalJSONWithoutQuotes = true
}

// VehicleType is the kind of vehicle parked.
type VehicleType string

const (
	TypeCar  VehicleType = "Car"
	TypeBike VehicleType = "Bike"
	TypeAuto VehicleType = "Auto"
)

// VehicleTypes lists all valid types in display order.
var VehicleTypes = []VehicleType{TypeCar, TypeBike, TypeAuto}

func (t VehicleType) Valid() bool {
	return t == TypeCar || t == TypeBike || t == TypeAuto
}

// PaymentStatus tracks whether the parking fee was collected.
type PaymentStatus string

const (
	StatusPaid   PaymentStatus = "Paid"
	StatusUnpaid PaymentStatus = "Unpaid"
)

func (s PaymentStatus) Valid() bool {
	return s == StatusPaid || s == StatusUnpaid
}

// Vehicle is one parking entry.
type Vehicle struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	VehicleType   VehicleType     `gorm:"size:16;index;not null" json:"vehicle_type"`
	VehicleNumber string          `gorm:"size:20;not null" json:"vehicle_number"`
	CustomerName  string          `gorm:"size:100;not null" json:"customer_name"`
	MobileNumber  string          `gorm:"size:15;not null" json:"mobile_number"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentStatus PaymentStatus   `gorm:"size:16;index;not null;default:Unpaid" json:"payment_status"`
	EntryDate     Date            `gorm:"type:date;index;not null" json:"entry_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
