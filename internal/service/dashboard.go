package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Aarbaz/perfect-management/internal/models"
	"github.com/Aarbaz/perfect-management/internal/repository"

	"github.com/shopspring/decimal"
)

// VehicleCounts is the fixed per-type breakdown. Types with no entries
// stay at zero.
type VehicleCounts struct {
	Car  int64 `json:"Car"`
	Bike int64 `json:"Bike"`
	Auto int64 `json:"Auto"`
}

func (c *VehicleCounts) set(t models.VehicleType, n int64) {
	switch t {
	case models.TypeCar:
		c.Car = n
	case models.TypeBike:
		c.Bike = n
	case models.TypeAuto:
		c.Auto = n
	}
}

func (c *VehicleCounts) add(t models.VehicleType) {
	switch t {
	case models.TypeCar:
		c.Car++
	case models.TypeBike:
		c.Bike++
	case models.TypeAuto:
		c.Auto++
	}
}

// Sum returns the total across all vehicle types.
func (c VehicleCounts) Sum() int64 {
	return c.Car + c.Bike + c.Auto
}

// PaymentBucket is one payment status' count and amount.
type PaymentBucket struct {
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// PaymentBreakdown is the fixed per-status breakdown. Statuses with no
// entries stay at {0, 0}.
type PaymentBreakdown struct {
	Paid   PaymentBucket `json:"Paid"`
	Unpaid PaymentBucket `json:"Unpaid"`
}

// DailySummary is the client-ready aggregate for one calendar date.
type DailySummary struct {
	Date          string           `json:"date"`
	VehicleCounts VehicleCounts    `json:"vehicleCounts"`
	TotalVehicles int64            `json:"totalVehicles"`
	TotalAmount   decimal.Decimal  `json:"totalAmount"`
	PaidAmount    decimal.Decimal  `json:"paidAmount"`
	UnpaidAmount  decimal.Decimal  `json:"unpaidAmount"`
	Profit        decimal.Decimal  `json:"profit"`
	PaymentStats  PaymentBreakdown `json:"paymentStats"`
}

// DayTotals is one day of the weekly view.
type DayTotals struct {
	Date          string          `json:"date"`
	TotalVehicles int64           `json:"totalVehicles"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	UnpaidAmount  decimal.Decimal `json:"unpaidAmount"`
	Profit        decimal.Decimal `json:"profit"`
}

// MonthlySummary aggregates one calendar month.
type MonthlySummary struct {
	Year                 int             `json:"year"`
	Month                int             `json:"month"`
	TotalVehicles        int64           `json:"totalVehicles"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	PaidAmount           decimal.Decimal `json:"paidAmount"`
	UnpaidAmount         decimal.Decimal `json:"unpaidAmount"`
	Profit               decimal.Decimal `json:"profit"`
	VehicleTypeBreakdown VehicleCounts   `json:"vehicleTypeBreakdown"`
}

// ChartSeries is the shape the dashboard charts render directly.
type ChartSeries struct {
	Labels   []string          `json:"labels"`
	Vehicles []int64           `json:"vehicles"`
	Amounts  []decimal.Decimal `json:"amounts"`
	Profits  []decimal.Decimal `json:"profits"`
}

// SummaryTotals carries the precise numeric values alongside the
// display strings of the combined summary.
type SummaryTotals struct {
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	UnpaidAmount decimal.Decimal `json:"unpaidAmount"`
	Profit       decimal.Decimal `json:"profit"`
}

// CombinedSummary is the full dashboard payload: today's headline
// numbers plus the daily, trailing-7-day and current-month charts.
// Money headline fields are pre-formatted for display; Totals keeps
// the precise values.
type CombinedSummary struct {
	TotalVehicles int64         `json:"totalVehicles"`
	PaidAmount    string        `json:"paidAmount"`
	UnpaidAmount  string        `json:"unpaidAmount"`
	Profit        string        `json:"profit"`
	Totals        SummaryTotals `json:"totals"`
	DailyChart    ChartSeries   `json:"dailyChart"`
	WeeklyChart   ChartSeries   `json:"weeklyChart"`
	MonthlyChart  ChartSeries   `json:"monthlyChart"`
}

// FormatCurrency renders a money value as the display string used
// across dashboards and exports.
func FormatCurrency(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}

// DashboardService reshapes repository stats into dashboard summaries.
// All views are derived per request; nothing is persisted.
type DashboardService struct {
	Vehicles *repository.VehicleRepository
}

func NewDashboardService(vehicles *repository.VehicleRepository) *DashboardService {
	return &DashboardService{Vehicles: vehicles}
}

// DailySummary builds the fixed-shape aggregate for one date.
// A date with no entries yields an all-zero summary.
func (s *DashboardService) DailySummary(date models.Date) (*DailySummary, error) {
	stats, err := s.Vehicles.StatsForDate(date.String())
	if err != nil {
		return nil, err
	}

	sum := &DailySummary{
		Date:          date.String(),
		TotalVehicles: stats.Totals.TotalVehicles,
		TotalAmount:   stats.Totals.TotalAmount,
		PaidAmount:    stats.Totals.PaidAmount,
		UnpaidAmount:  stats.Totals.UnpaidAmount,
		Profit:        stats.Totals.PaidAmount.Sub(stats.Totals.UnpaidAmount),
	}

	for _, tc := range stats.VehicleCounts {
		sum.VehicleCounts.set(tc.VehicleType, tc.Count)
	}
	for _, ps := range stats.PaymentStats {
		bucket := PaymentBucket{Count: ps.Count, Amount: ps.TotalAmount}
		switch ps.PaymentStatus {
		case models.StatusPaid:
			sum.PaymentStats.Paid = bucket
		case models.StatusUnpaid:
			sum.PaymentStats.Unpaid = bucket
		}
	}

	return sum, nil
}

// WeeklySummary returns exactly 7 entries for the calendar days
// endDate-6 .. endDate in ascending order. The window is a single
// grouped range query bucketed in memory; days without entries are
// zero-filled.
func (s *DashboardService) WeeklySummary(endDate models.Date) ([]DayTotals, error) {
	startDate := endDate.AddDays(-6)

	days, err := s.Vehicles.DailyTotals(startDate.String(), endDate.String())
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]repository.DayStat, len(days))
	for _, d := range days {
		byDate[d.EntryDate.String()] = d
	}

	week := make([]DayTotals, 0, 7)
	for i := 0; i < 7; i++ {
		date := startDate.AddDays(i).String()
		day := byDate[date] // zero value when the day had no entries
		week = append(week, DayTotals{
			Date:          date,
			TotalVehicles: day.TotalVehicles,
			TotalAmount:   day.TotalAmount,
			PaidAmount:    day.PaidAmount,
			UnpaidAmount:  day.UnpaidAmount,
			Profit:        day.PaidAmount.Sub(day.UnpaidAmount),
		})
	}
	return week, nil
}

// monthBounds returns the first and last calendar day of a month.
func monthBounds(year, month int) (models.Date, models.Date, int) {
	first := models.NewDate(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return first, models.NewDate(lastDay), lastDay.Day()
}

// MonthlySummary sums the month's entries in memory: totals, paid and
// unpaid amounts, and the per-type count breakdown.
func (s *DashboardService) MonthlySummary(year, month int) (*MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	first, last, _ := monthBounds(year, month)
	vehicles, err := s.Vehicles.ListRange(first.String(), last.String())
	if err != nil {
		return nil, err
	}

	sum := &MonthlySummary{
		Year:          year,
		Month:         month,
		TotalVehicles: int64(len(vehicles)),
		TotalAmount:   decimal.Zero,
		PaidAmount:    decimal.Zero,
		UnpaidAmount:  decimal.Zero,
	}
	for i := range vehicles {
		v := &vehicles[i]
		sum.TotalAmount = sum.TotalAmount.Add(v.Amount)
		switch v.PaymentStatus {
		case models.StatusPaid:
			sum.PaidAmount = sum.PaidAmount.Add(v.Amount)
		case models.StatusUnpaid:
			sum.UnpaidAmount = sum.UnpaidAmount.Add(v.Amount)
		}
		sum.VehicleTypeBreakdown.add(v.VehicleType)
	}
	sum.Profit = sum.PaidAmount.Sub(sum.UnpaidAmount)

	return sum, nil
}

// CombinedSummary assembles the complete dashboard payload for one
// date: the daily headline numbers, a trailing 7-day chart and one data
// point per calendar day of the date's month.
func (s *DashboardService) CombinedSummary(date models.Date) (*CombinedSummary, error) {
	daily, err := s.DailySummary(date)
	if err != nil {
		return nil, err
	}

	week, err := s.WeeklySummary(date)
	if err != nil {
		return nil, err
	}
	weeklyChart := ChartSeries{}
	for _, d := range week {
		label, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			return nil, fmt.Errorf("weekly chart label: %w", err)
		}
		weeklyChart.Labels = append(weeklyChart.Labels, label.Format("Jan 2"))
		weeklyChart.Vehicles = append(weeklyChart.Vehicles, d.TotalVehicles)
		weeklyChart.Amounts = append(weeklyChart.Amounts, d.TotalAmount)
		weeklyChart.Profits = append(weeklyChart.Profits, d.Profit)
	}

	first, last, daysInMonth := monthBounds(date.Year(), int(date.Month()))
	monthVehicles, err := s.Vehicles.ListRange(first.String(), last.String())
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]*models.Vehicle)
	for i := range monthVehicles {
		v := &monthVehicles[i]
		key := v.EntryDate.String()
		byDay[key] = append(byDay[key], v)
	}

	monthlyChart := ChartSeries{}
	for day := 1; day <= daysInMonth; day++ {
		dayDate := first.AddDays(day - 1).String()
		var paid, unpaid, amount decimal.Decimal
		entries := byDay[dayDate]
		for _, v := range entries {
			amount = amount.Add(v.Amount)
			if v.PaymentStatus == models.StatusPaid {
				paid = paid.Add(v.Amount)
			} else {
				unpaid = unpaid.Add(v.Amount)
			}
		}
		monthlyChart.Labels = append(monthlyChart.Labels, strconv.Itoa(day))
		monthlyChart.Vehicles = append(monthlyChart.Vehicles, int64(len(entries)))
		monthlyChart.Amounts = append(monthlyChart.Amounts, amount)
		monthlyChart.Profits = append(monthlyChart.Profits, paid.Sub(unpaid))
	}

	return &CombinedSummary{
		TotalVehicles: daily.TotalVehicles,
		PaidAmount:    FormatCurrency(daily.PaidAmount),
		UnpaidAmount:  FormatCurrency(daily.UnpaidAmount),
		Profit:        FormatCurrency(daily.Profit),
		Totals: SummaryTotals{
			TotalAmount:  daily.TotalAmount,
			PaidAmount:   daily.PaidAmount,
			UnpaidAmount: daily.UnpaidAmount,
			Profit:       daily.Profit,
		},
		DailyChart: ChartSeries{
			Labels:   []string{daily.Date},
			Vehicles: []int64{daily.TotalVehicles},
			Amounts:  []decimal.Decimal{daily.TotalAmount},
			Profits:  []decimal.Decimal{daily.Profit},
		},
		WeeklyChart:  weeklyChart,
		MonthlyChart: monthlyChart,
	}, nil
}
