package repository

import (
	"testing"

	"github.com/Aarbaz/perfect-management/internal/models"

	"github.com/shopspring/decimal"
)

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func newVehicle(t *testing.T, vt models.VehicleType, number, customer, mobile, amount string, status models.PaymentStatus, date string) *models.Vehicle {
	t.Helper()
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("parse amount %q: %v", amount, err)
	}
	return &models.Vehicle{
		VehicleType:   vt,
		VehicleNumber: number,
		CustomerName:  customer,
		MobileNumber:  mobile,
		Amount:        amt,
		PaymentStatus: status,
		EntryDate:     mustDate(t, date),
	}
}

func TestVehicleRepository_CreateAndGet(t *testing.T) {
	repo := NewVehicleRepository(newTestDB(t))

	v := newVehicle(t, models.TypeCar, "GJ01AB1234", "Asha", "9998887776", "50.00", models.StatusPaid, "2024-03-01")
	if err := repo.Create(v); err != nil {
		t.Fatalf("Create() error = %v, want nil", err)
	}
	if v.ID == 0 {
		t.Fatal("Create() did not assign id")
	}

	got, err := repo.GetByID(v.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v, want nil", err)
	}
	if got == nil {
		t.Fatal("GetByID() = nil, want row")
	}
	if got.VehicleNumber != "GJ01AB1234" {
		t.Errorf("VehicleNumber = %q, want GJ01AB1234", got.VehicleNumber)
	}
	if !got.Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Amount = %s, want 50", got.Amount)
	}
	if got.EntryDate.String() != "2024-03-01" {
		t.Errorf("EntryDate = %q, want 2024-03-01", got.EntryDate)
	}
}

func TestVehicleRepository_GetByID_Missing(t *testing.T) {
	repo := NewVehicleRepository(newTestDB(t))

	got, err := repo.GetByID(999)
	if err != nil {
		t.Fatalf("GetByID(999) error = %v, want nil", err)
	}
	if got != nil {
		t.Errorf("GetByID(999) = %+v, want nil", got)
	}
}

func TestVehicleRepository_Update(t *testing.T) {
	repo := NewVehicleRepository(newTestDB(t))

	v := newVehicle(t, models.TypeBike, "GJ05XY9999", "Ravi", "8887776665", "20.00", models.StatusUnpaid, "2024-03-02")
	if err := repo.Create(v); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	v.PaymentStatus = models.StatusPaid
	v.Amount = decimal.RequireFromString("25.00")
	updated, err := repo.Update(v.ID, v)
	if err != nil {
		t.Fatalf("Update() error = %v, want nil", err)
	}
	if updated == nil {
		t.Fatal("Update() = nil, want row")
	}
	if updated.PaymentStatus != models.StatusPaid {
		t.Errorf("PaymentStatus = %q, want Paid", updated.PaymentStatus)
	}
	if !updated.Amount.Equal(decimal.RequireFromString("25.00")) {
		t.Errorf("Amount = %s, want 25.00", updated.Amount)
	}
}

func TestVehicleRepository_Update_Missing(t *testing.T) {
	repo := NewVehicleRepository(newTestDB(t))

	v := newVehicle(t, models.TypeCar, "GJ01AB1234", "Asha", "9998887776", "50.00", models.StatusPaid, "2024-03-01")
	updated, err := repo.Update(12345, v)
	if err != nil {
		t.Fatalf("Update(12345) error = %v, want nil", err)
	}
	if updated != nil {
		t.Errorf("Update(12345) = %+v, want nil", updated)
	}
}

func TestVehicleRepository_Delete(t *testing.T) {
	repo := NewVehicleRepository(newTestDB(t))

	v := newVehicle(t, models.TypeAuto, "GJ18CD4321", "Meena", "7776665554", "30.00", models.StatusPaid, "2024-03-03")
	if err := repo.Create(v); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	deleted, err := repo.Delete(v.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v, want nil", err)
	}
	if !deleted {
		t.Error("Delete() = false, want true")
	}

	// deleting again reports no row
	deleted, err = repo.Delete(v.ID)
	if err != nil {
		t.Fatalf("second Delete() error = %v, want nil", err)
	}
	if deleted {
		t.Error("second Delete() = true, want false")
	}
}

func seedSearchRows(t *testing.T, repo *VehicleRepository) {
	t.Helper()
	rows := []*models.Vehicle{
		newVehicle(t, models.TypeCar, "GJ01AB1234", "Asha Patel", "9998887776", "50.00", models.StatusPaid, "2024-03-01"),
		newVehicle(t, models.TypeBike, "MH12XY9999", "Ravi Shah", "8887776665", "20.00", models.StatusUnpaid, "2024-03-02"),
		newVehicle(t, models.TypeAuto, "GJ18CD4321", "Meena Kumari", "7776665554", "30.00", models.StatusPaid, "2024-03-05"),
	}
	for _, v := range rows {
		if err := repo.Create(v); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestVehicleRepository_List_Search(t *testing.T) {
	repo := NewVehicleRepository(newTestDB(t))
	seedSearchRows(t, repo)

	got, err := repo.List(10, 0, ListFilters{Search: "GJ01"})
	if err != nil {
		t.Fatalf("List() error = %v, want nil", err)
	}
	if len(got) != 1 {
		t.Fatalf("List(search=GJ01) returned %d rows, want 1", len(got))
	}
	if got[0].VehicleNumber != "GJ01AB1234" {
		t.Errorf("VehicleNumber = %q, want GJ01AB1234", got[0].VehicleNumber)
	}

	// searches match customer names and mobile numbers too
	got, err = repo.List(10, 0, ListFilters{Search: "Ravi"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].CustomerName != "Ravi Shah" {
		t.Errorf("List(search=Ravi) = %d rows, want the Ravi Shah row", len(got))
	}

	got, err = repo.List(10, 0, ListFilters{Search: "zzz"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List(search=zzz) returned %d rows, want 0", len(got))
	}
}

func TestVehicleRepository_List_DateRange(t *testing.T) {
	repo := NewVehicleRepository(newTestDB(t))
	seedSearchRows(t, repo)

	got, err := repo.List(10, 0, ListFilters{StartDate: "2024-03-01", EndDate: "2024-03-02"})
	if err != nil {
		t.Fatalf("List() error = %v, want nil", err)
	}
	if len(got) != 2 {
		t.Errorf("List(range) returned %d rows, want 2", len(got))
	}
}

func TestVehicleRepository_CountFiltered(t *testing.T) {
	repo := NewVehicleRepository(newTestDB(t))
	seedSearchRows(t, repo)

	total, err := repo.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if total != 3 {
		t.Errorf("Count() = %d, want 3", total)
	}

	n, err := repo.CountFiltered(ListFilters{Search: "GJ"})
	if err != nil {
		t.Fatalf("CountFiltered() error = %v", err)
	}
	if n != 2 {
		t.Errorf("CountFiltered(GJ) = %d, want 2", n)
	}
}

func TestVehicleRepository_StatsForDate(t *testing.T) {
	repo := NewVehicleRepository(newTestDB(t))

	rows := []*models.Vehicle{
		newVehicle(t, models.TypeCar, "GJ01AB1234", "Asha", "9998887776", "50.00", models.StatusPaid, "2024-03-01"),
		newVehicle(t, models.TypeBike, "GJ05XY9999", "Ravi", "8887776665", "20.00", models.StatusUnpaid, "2024-03-01"),
		newVehicle(t, models.TypeCar, "GJ18CD4321", "Meena", "7776665554", "60.00", models.StatusPaid, "2024-03-02"), // other day
	}
	for _, v := range rows {
		if err := repo.Create(v); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	stats, err := repo.StatsForDate("2024-03-01")
	if err != nil {
		t.Fatalf("StatsForDate() error = %v, want nil", err)
	}
	if stats.Totals.TotalVehicles != 2 {
		t.Errorf("TotalVehicles = %d, want 2", stats.Totals.TotalVehicles)
	}
	if !stats.Totals.TotalAmount.Equal(decimal.NewFromInt(70)) {
		t.Errorf("TotalAmount = %s, want 70", stats.Totals.TotalAmount)
	}
	if !stats.Totals.PaidAmount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("PaidAmount = %s, want 50", stats.Totals.PaidAmount)
	}
	if !stats.Totals.UnpaidAmount.Equal(decimal.NewFromInt(20)) {
		t.Errorf("UnpaidAmount = %s, want 20", stats.Totals.UnpaidAmount)
	}
	if len(stats.VehicleCounts) != 2 {
		t.Errorf("VehicleCounts has %d groups, want 2", len(stats.VehicleCounts))
	}
}

func TestVehicleRepository_StatsForDate_Empty(t *testing.T) {
	repo := NewVehicleRepository(newTestDB(t))

	stats, err := repo.StatsForDate("2024-03-01")
	if err != nil {
		t.Fatalf("StatsForDate() error = %v, want nil", err)
	}
	if stats.Totals.TotalVehicles != 0 {
		t.Errorf("TotalVehicles = %d, want 0", stats.Totals.TotalVehicles)
	}
	if !stats.Totals.TotalAmount.IsZero() {
		t.Errorf("TotalAmount = %s, want 0", stats.Totals.TotalAmount)
	}
}

func TestVehicleRepository_DailyTotals(t *testing.T) {
	repo := NewVehicleRepository(newTestDB(t))

	rows := []*models.Vehicle{
		newVehicle(t, models.TypeCar, "GJ01AB1234", "Asha", "9998887776", "50.00", models.StatusPaid, "2024-03-01"),
		newVehicle(t, models.TypeBike, "GJ05XY9999", "Ravi", "8887776665", "20.00", models.StatusUnpaid, "2024-03-01"),
		newVehicle(t, models.TypeAuto, "GJ18CD4321", "Meena", "7776665554", "30.00", models.StatusPaid, "2024-03-03"),
		newVehicle(t, models.TypeCar, "MH12AB0001", "Kiran", "6665554443", "40.00", models.StatusPaid, "2024-03-10"), // outside range
	}
	for _, v := range rows {
		if err := repo.Create(v); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	days, err := repo.DailyTotals("2024-03-01", "2024-03-07")
	if err != nil {
		t.Fatalf("DailyTotals() error = %v, want nil", err)
	}
	if len(days) != 2 {
		t.Fatalf("DailyTotals() returned %d days, want 2", len(days))
	}

	byDate := map[string]DayStat{}
	for _, d := range days {
		byDate[d.EntryDate.String()] = d
	}
	d1 := byDate["2024-03-01"]
	if d1.TotalVehicles != 2 || !d1.PaidAmount.Equal(decimal.NewFromInt(50)) || !d1.UnpaidAmount.Equal(decimal.NewFromInt(20)) {
		t.Errorf("2024-03-01 = %+v, want 2 vehicles, paid 50, unpaid 20", d1)
	}
	d3 := byDate["2024-03-03"]
	if d3.TotalVehicles != 1 || !d3.TotalAmount.Equal(decimal.NewFromInt(30)) {
		t.Errorf("2024-03-03 = %+v, want 1 vehicle, total 30", d3)
	}
}

func TestVehicleRepository_ListForReport(t *testing.T) {
	repo := NewVehicleRepository(newTestDB(t))
	seedSearchRows(t, repo)

	got, err := repo.ListForReport(ReportFilters{VehicleType: models.TypeCar})
	if err != nil {
		t.Fatalf("ListForReport() error = %v, want nil", err)
	}
	if len(got) != 1 || got[0].VehicleType != models.TypeCar {
		t.Errorf("ListForReport(Car) = %d rows, want the single car", len(got))
	}

	got, err = repo.ListForReport(ReportFilters{
		StartDate:     "2024-03-01",
		EndDate:       "2024-03-05",
		PaymentStatus: models.StatusPaid,
	})
	if err != nil {
		t.Fatalf("ListForReport() error = %v, want nil", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListForReport(range+Paid) = %d rows, want 2", len(got))
	}
	// newest entry_date first
	if got[0].EntryDate.String() != "2024-03-05" {
		t.Errorf("first row date = %q, want 2024-03-05", got[0].EntryDate)
	}
}
