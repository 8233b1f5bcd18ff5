package repository

import (
	"errors"
	"fmt"

	"github.com/Aarbaz/perfect-management/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListFilters narrows the paginated vehicle listing. All supplied
// filters AND together.
type ListFilters struct {
	Search    string // substring match on number, customer and mobile
	StartDate string // inclusive YYYY-MM-DD
	EndDate   string // inclusive YYYY-MM-DD
}

// ReportFilters narrows the report/export queries.
type ReportFilters struct {
	StartDate     string
	EndDate       string
	VehicleType   models.VehicleType
	PaymentStatus models.PaymentStatus
}

// TypeCount is one row of the per-type grouping.
type TypeCount struct {
	VehicleType models.VehicleType `json:"vehicle_type"`
	Count       int64              `json:"count"`
}

// PaymentStat is one row of the per-payment-status grouping.
type PaymentStat struct {
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	Count         int64                `json:"count"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
}

// TotalStats is the single-row overall aggregate.
type TotalStats struct {
	TotalVehicles int64           `json:"total_vehicles"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	UnpaidAmount  decimal.Decimal `json:"unpaid_amount"`
}

// DashboardStats bundles the three grouped views used by the dashboard.
type DashboardStats struct {
	VehicleCounts []TypeCount
	PaymentStats  []PaymentStat
	Totals        TotalStats
}

// DayStat is one calendar day's totals from a grouped range query.
type DayStat struct {
	EntryDate     models.Date
	TotalVehicles int64
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	UnpaidAmount  decimal.Decimal
}

// VehicleRepository runs all queries against the vehicles table.
// Every call goes to the store; nothing is cached.
type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create stores a new entry and assigns its id.
func (r *VehicleRepository) Create(v *models.Vehicle) error {
	if err := r.db.Create(v).Error; err != nil {
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}

// GetByID returns the entry or (nil, nil) when no row matches.
func (r *VehicleRepository) GetByID(id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := r.db.First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle %d: %w", id, err)
	}
	return &v, nil
}

// Update overwrites all mutable fields of the row matching id and
// returns the refreshed record, or (nil, nil) when no row matched.
func (r *VehicleRepository) Update(id uint, v *models.Vehicle) (*models.Vehicle, error) {
	res := r.db.Model(&models.Vehicle{}).Where("id = ?", id).Updates(map[string]interface{}{
		"vehicle_type":   v.VehicleType,
		"vehicle_number": v.VehicleNumber,
		"customer_name":  v.CustomerName,
		"mobile_number":  v.MobileNumber,
		"amount":         v.Amount,
		"payment_status": v.PaymentStatus,
		"entry_date":     v.EntryDate,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("update vehicle %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(id)
}

// Delete removes the row and reports whether one was actually removed.
func (r *VehicleRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&models.Vehicle{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete vehicle %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *VehicleRepository) filtered(f ListFilters) *gorm.DB {
	q := r.db.Model(&models.Vehicle{})
	if f.Search != "" {
		s := "%" + f.Search + "%"
		q = q.Where("vehicle_number LIKE ? OR customer_name LIKE ? OR mobile_number LIKE ?", s, s, s)
	}
	if f.StartDate != "" && f.EndDate != "" {
		q = q.Where("entry_date BETWEEN ? AND ?", f.StartDate, f.EndDate)
	} else if f.StartDate != "" {
		q = q.Where("entry_date >= ?", f.StartDate)
	} else if f.EndDate != "" {
		q = q.Where("entry_date <= ?", f.EndDate)
	}
	return q
}

// List returns up to limit rows ordered most-recent-first, skipping offset.
func (r *VehicleRepository) List(limit, offset int, f ListFilters) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := r.filtered(f).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vehicles, nil
}

// Count returns the total row count, ignoring filters.
func (r *VehicleRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Vehicle{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count vehicles: %w", err)
	}
	return n, nil
}

// CountFiltered returns the row count under the same WHERE clause List
// uses, so pagination metadata stays correct for filtered listings.
func (r *VehicleRepository) CountFiltered(f ListFilters) (int64, error) {
	var n int64
	if err := r.filtered(f).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count filtered vehicles: %w", err)
	}
	return n, nil
}

// StatsForDate returns the three grouped dashboard views, scoped to the
// given YYYY-MM-DD date, or over the whole table when date is empty.
func (r *VehicleRepository) StatsForDate(date string) (*DashboardStats, error) {
	scoped := func() *gorm.DB {
		q := r.db.Model(&models.Vehicle{})
		if date != "" {
			q = q.Where("entry_date = ?", date)
		}
		return q
	}

	stats := &DashboardStats{}

	if err := scoped().
		Select("vehicle_type, COUNT(*) AS count").
		Group("vehicle_type").
		Scan(&stats.VehicleCounts).Error; err != nil {
		return nil, fmt.Errorf("vehicle counts: %w", err)
	}

	if err := scoped().
		Select("payment_status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount").
		Group("payment_status").
		Scan(&stats.PaymentStats).Error; err != nil {
		return nil, fmt.Errorf("payment stats: %w", err)
	}

	if err := scoped().
		Select(`COUNT(*) AS total_vehicles,
			COALESCE(SUM(amount), 0) AS total_amount,
			COALESCE(SUM(CASE WHEN payment_status = 'Paid' THEN amount ELSE 0 END), 0) AS paid_amount,
			COALESCE(SUM(CASE WHEN payment_status = 'Unpaid' THEN amount ELSE 0 END), 0) AS unpaid_amount`).
		Scan(&stats.Totals).Error; err != nil {
		return nil, fmt.Errorf("total stats: %w", err)
	}

	return stats, nil
}

// DailyTotals groups totals per entry_date over an inclusive range.
// Days with no entries are absent; callers zero-fill.
func (r *VehicleRepository) DailyTotals(startDate, endDate string) ([]DayStat, error) {
	var days []DayStat
	if err := r.db.Model(&models.Vehicle{}).
		Select(`entry_date,
			COUNT(*) AS total_vehicles,
			COALESCE(SUM(amount), 0) AS total_amount,
			COALESCE(SUM(CASE WHEN payment_status = 'Paid' THEN amount ELSE 0 END), 0) AS paid_amount,
			COALESCE(SUM(CASE WHEN payment_status = 'Unpaid' THEN amount ELSE 0 END), 0) AS unpaid_amount`).
		Where("entry_date BETWEEN ? AND ?", startDate, endDate).
		Group("entry_date").
		Scan(&days).Error; err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	return days, nil
}

// ListByDate returns all entries for one calendar day, newest first.
func (r *VehicleRepository) ListByDate(date string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := r.db.
		Where("entry_date = ?", date).
		Order("created_at DESC, id DESC").
		Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("list vehicles for %s: %w", date, err)
	}
	return vehicles, nil
}

// ListRange returns all entries with entry_date in the inclusive range,
// ordered by entry_date ascending (the aggregation order).
func (r *VehicleRepository) ListRange(startDate, endDate string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := r.db.
		Where("entry_date BETWEEN ? AND ?", startDate, endDate).
		Order("entry_date ASC, id ASC").
		Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("list vehicles %s..%s: %w", startDate, endDate, err)
	}
	return vehicles, nil
}

// ListForReport returns the filtered rows for the report screens and
// exports, ordered by entry_date descending.
func (r *VehicleRepository) ListForReport(f ReportFilters) ([]models.Vehicle, error) {
	q := r.db.Model(&models.Vehicle{})
	if f.StartDate != "" {
		q = q.Where("entry_date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("entry_date <= ?", f.EndDate)
	}
	if f.VehicleType != "" {
		q = q.Where("vehicle_type = ?", f.VehicleType)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}

	var vehicles []models.Vehicle
	if err := q.Order("entry_date DESC, id DESC").Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("list vehicles for report: %w", err)
	}
	return vehicles, nil
}
