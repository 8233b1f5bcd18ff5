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

// ReportHandler serves filtered report listings and their exports.
type ReportHandler struct {
	Repo   *repository.VehicleRepository
	Export *service.ExportService
}

func NewReportHandler(repo *repository.VehicleRepository, export *service.ExportService) *ReportHandler {
	return &ReportHandler{Repo: repo, Export: export}
}

// reportFilters reads and validates the shared report query parameters.
func reportFilters(c *gin.Context) (repository.ReportFilters, bool) {
	var f repository.ReportFilters

	for _, q := range []struct {
		name string
		dst  *string
	}{
		{"start_date", &f.StartDate},
		{"end_date", &f.EndDate},
	} {
		if s := c.Query(q.name); s != "" {
			if _, err := models.ParseDate(s); err != nil {
				util.Error(c, http.StatusBadRequest, q.name+" must be a valid YYYY-MM-DD date")
				return f, false
			}
			*q.dst = s
		}
	}

	if s := c.Query("vehicle_type"); s != "" {
		t := models.VehicleType(s)
		if !t.Valid() {
			util.Error(c, http.StatusBadRequest, "Vehicle type must be Car, Bike, or Auto")
			return f, false
		}
		f.VehicleType = t
	}
	if s := c.Query("payment_status"); s != "" {
		ps := models.PaymentStatus(s)
		if !ps.Valid() {
			util.Error(c, http.StatusBadRequest, "Payment status must be Paid or Unpaid")
			return f, false
		}
		f.PaymentStatus = ps
	}

	return f, true
}

func (h *ReportHandler) Filter(c *gin.Context) {
	filters, ok := reportFilters(c)
	if !ok {
		return
	}

	vehicles, err := h.Repo.ListForReport(filters)
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Failed to fetch reports", err)
		return
	}

	util.Success(c, http.StatusOK, "", util.Response{"vehicles": vehicles})
}

// filterDescription renders the active filters as the lines shown under
// the PDF title.
func filterDescription(f repository.ReportFilters) []string {
	var lines []string

	switch {
	case f.StartDate != "" && f.EndDate != "":
		lines = append(lines, fmt.Sprintf("Date Range: %s to %s", f.StartDate, f.EndDate))
	case f.StartDate != "":
		lines = append(lines, "Date Range: From "+f.StartDate)
	case f.EndDate != "":
		lines = append(lines, "Date Range: Until "+f.EndDate)
	}

	var parts []string
	if f.VehicleType != "" {
		parts = append(parts, "Vehicle Type: "+string(f.VehicleType))
	}
	if f.PaymentStatus != "" {
		parts = append(parts, "Payment Status: "+string(f.PaymentStatus))
	}
	if len(parts) > 0 {
		desc := "Filters: " + parts[0]
		if len(parts) == 2 {
			desc += ", " + parts[1]
		}
		lines = append(lines, desc)
	}

	return lines
}

// ExportFiltered streams the filtered report as a spreadsheet or a PDF.
func (h *ReportHandler) ExportFiltered(c *gin.Context) {
	filters, ok := reportFilters(c)
	if !ok {
		return
	}

	vehicles, err := h.Repo.ListForReport(filters)
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Failed to fetch reports", err)
		return
	}

	today := models.Today()

	switch c.Param("format") {
	case "excel":
		data, err := h.Export.Spreadsheet("Vehicle Report", vehicles, nil)
		if err != nil {
			util.ErrorDetail(c, http.StatusInternalServerError, "Failed to export Excel file", err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=vehicle_report_%s.xlsx", today))
		c.Data(http.StatusOK, contentTypeXLSX, data)

	case "pdf":
		var total, paid, unpaid decimal.Decimal
		for i := range vehicles {
			v := &vehicles[i]
			total = total.Add(v.Amount)
			switch v.PaymentStatus {
			case models.StatusPaid:
				paid = paid.Add(v.Amount)
			case models.StatusUnpaid:
				unpaid = unpaid.Add(v.Amount)
			}
		}
		summary := []service.SummaryLine{
			{Label: "Total Records", Value: strconv.Itoa(len(vehicles))},
			{Label: "Total Amount", Value: inrCurrency(total)},
			{Label: "Paid Amount", Value: inrCurrency(paid)},
			{Label: "Unpaid Amount", Value: inrCurrency(unpaid)},
		}

		data, err := h.Export.PDF("Vehicle Parking Report", vehicles, summary, filterDescription(filters))
		if err != nil {
			util.ErrorDetail(c, http.StatusInternalServerError, "Failed to export PDF file", err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=vehicle_report_%s.pdf", today))
		c.Data(http.StatusOK, contentTypePDF, data)

	default:
		util.Error(c, http.StatusBadRequest, "Unsupported export format")
	}
}
