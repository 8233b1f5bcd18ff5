package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Aarbaz/perfect-management/internal/models"
	"github.com/Aarbaz/perfect-management/internal/repository"
	"github.com/Aarbaz/perfect-management/internal/service"
	"github.com/Aarbaz/perfect-management/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// DashboardHandler serves the summary and export endpoints.
type DashboardHandler struct {
	Dash   *service.DashboardService
	Export *service.ExportService
	Repo   *repository.VehicleRepository
}

func NewDashboardHandler(dash *service.DashboardService, export *service.ExportService, repo *repository.VehicleRepository) *DashboardHandler {
	return &DashboardHandler{Dash: dash, Export: export, Repo: repo}
}

// queryDate reads ?date= (or another name), defaulting to today.
func queryDate(c *gin.Context, name string) (models.Date, bool) {
	s := c.Query(name)
	if s == "" {
		return models.Today(), true
	}
	d, err := models.ParseDate(s)
	if err != nil {
		util.Error(c, http.StatusBadRequest, name+" must be a valid YYYY-MM-DD date")
		return models.Date{}, false
	}
	return d, true
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	summary, err := h.Dash.CombinedSummary(date)
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	util.Success(c, http.StatusOK, "", summary)
}

func (h *DashboardHandler) DailySummary(c *gin.Context) {
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	summary, err := h.Dash.DailySummary(date)
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	util.Success(c, http.StatusOK, "", summary)
}

func (h *DashboardHandler) WeeklyStats(c *gin.Context) {
	endDate, ok := queryDate(c, "end_date")
	if !ok {
		return
	}

	week, err := h.Dash.WeeklySummary(endDate)
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	util.Success(c, http.StatusOK, "", week)
}

func (h *DashboardHandler) MonthlyStats(c *gin.Context) {
	now := models.Today()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))

	summary, err := h.Dash.MonthlySummary(year, month)
	if err == service.ErrInvalidMonth {
		util.Error(c, http.StatusBadRequest, "Month must be between 1 and 12")
		return
	}
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	util.Success(c, http.StatusOK, "", summary)
}

// dailySummaryLines renders the daily aggregate as ordered label/value
// lines for an export document. currency controls the money rendering
// (the PDF fonts cannot encode the rupee sign).
func dailySummaryLines(sum *service.DailySummary, currency func(decimal.Decimal) string) []service.SummaryLine {
	return []service.SummaryLine{
		{Label: "Date", Value: sum.Date},
		{Label: "Total Vehicles", Value: strconv.FormatInt(sum.TotalVehicles, 10)},
		{Label: "Total Amount", Value: currency(sum.TotalAmount)},
		{Label: "Paid Amount", Value: currency(sum.PaidAmount)},
		{Label: "Unpaid Amount", Value: currency(sum.UnpaidAmount)},
		{Label: "Profit", Value: currency(sum.Profit)},
		{Label: "Car", Value: strconv.FormatInt(sum.VehicleCounts.Car, 10)},
		{Label: "Bike", Value: strconv.FormatInt(sum.VehicleCounts.Bike, 10)},
		{Label: "Auto", Value: strconv.FormatInt(sum.VehicleCounts.Auto, 10)},
		{Label: "Paid", Value: fmt.Sprintf("%d vehicles (%s)",
			sum.PaymentStats.Paid.Count, currency(sum.PaymentStats.Paid.Amount))},
		{Label: "Unpaid", Value: fmt.Sprintf("%d vehicles (%s)",
			sum.PaymentStats.Unpaid.Count, currency(sum.PaymentStats.Unpaid.Amount))},
	}
}

func inrCurrency(d decimal.Decimal) string {
	return "INR " + d.StringFixed(2)
}

// ExportDaily streams the daily summary as a spreadsheet or a PDF,
// selected by the path parameter.
func (h *DashboardHandler) ExportDaily(c *gin.Context) {
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	summary, err := h.Dash.DailySummary(date)
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	switch c.Param("format") {
	case "excel":
		vehicles, err := h.Repo.ListByDate(date.String())
		if err != nil {
			util.ErrorDetail(c, http.StatusInternalServerError, "Failed to export Excel file", err)
			return
		}
		lines := append([]service.SummaryLine{{Label: "Daily Dashboard Summary"}},
			dailySummaryLines(summary, service.FormatCurrency)...)
		data, err := h.Export.Spreadsheet("Daily Summary", vehicles, lines)
		if err != nil {
			util.ErrorDetail(c, http.StatusInternalServerError, "Failed to export Excel file", err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=daily_summary_%s.xlsx", date))
		c.Data(http.StatusOK, contentTypeXLSX, data)

	case "pdf":
		data, err := h.Export.PDF("Daily Dashboard Summary", nil,
			dailySummaryLines(summary, inrCurrency), nil)
		if err != nil {
			util.ErrorDetail(c, http.StatusInternalServerError, "Failed to export PDF file", err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=daily_summary_%s.pdf", date))
		c.Data(http.StatusOK, contentTypePDF, data)

	default:
		util.Error(c, http.StatusBadRequest, "Unsupported export format")
	}
}
