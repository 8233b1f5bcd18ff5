package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Aarbaz/perfect-management/internal/models"
	"github.com/Aarbaz/perfect-management/internal/repository"
	"github.com/Aarbaz/perfect-management/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// VehicleHandler serves the vehicle CRUD endpoints.
type VehicleHandler struct {
	Repo     *repository.VehicleRepository
	PageSize int
}

func NewVehicleHandler(repo *repository.VehicleRepository, pageSize int) *VehicleHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &VehicleHandler{Repo: repo, PageSize: pageSize}
}

type vehicleReq struct {
	VehicleType   models.VehicleType   `json:"vehicle_type" binding:"required,oneof=Car Bike Auto"`
	VehicleNumber string               `json:"vehicle_number" binding:"required"`
	CustomerName  string               `json:"customer_name" binding:"required,min=2,max=100"`
	MobileNumber  string               `json:"mobile_number" binding:"required"`
	Amount        *decimal.Decimal     `json:"amount" binding:"required"`
	PaymentStatus models.PaymentStatus `json:"payment_status" binding:"omitempty,oneof=Paid Unpaid"`
	EntryDate     string               `json:"entry_date"`
}

// toVehicle validates the free-form fields and builds the domain record.
// Payment status defaults to Unpaid and entry date to today.
func (r *vehicleReq) toVehicle() (*models.Vehicle, error) {
	r.VehicleNumber = strings.TrimSpace(r.VehicleNumber)
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.MobileNumber = strings.TrimSpace(r.MobileNumber)

	if err := util.ValidateVehicleNumber(r.VehicleNumber); err != nil {
		return nil, err
	}
	if err := util.ValidateMobileNumber(r.MobileNumber); err != nil {
		return nil, err
	}
	if r.Amount.Sign() < 0 {
		return nil, errNegativeAmount
	}

	status := r.PaymentStatus
	if status == "" {
		status = models.StatusUnpaid
	}

	entryDate := models.Today()
	if r.EntryDate != "" {
		d, err := models.ParseDate(r.EntryDate)
		if err != nil {
			return nil, err
		}
		entryDate = d
	}

	return &models.Vehicle{
		VehicleType:   r.VehicleType,
		VehicleNumber: r.VehicleNumber,
		CustomerName:  r.CustomerName,
		MobileNumber:  r.MobileNumber,
		Amount:        *r.Amount,
		PaymentStatus: status,
		EntryDate:     entryDate,
	}, nil
}

var errNegativeAmount = &validationError{"Amount must be a positive number"}

type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }

func (h *VehicleHandler) Create(c *gin.Context) {
	var req vehicleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ErrorDetail(c, http.StatusBadRequest, "Validation failed", err)
		return
	}

	vehicle, err := req.toVehicle()
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repo.Create(vehicle); err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Failed to create vehicle", err)
		return
	}

	util.Success(c, http.StatusCreated, "Vehicle created successfully", vehicle)
}

func (h *VehicleHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	vehicle, err := h.Repo.GetByID(id)
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if vehicle == nil {
		util.Error(c, http.StatusNotFound, "Vehicle not found")
		return
	}

	util.Success(c, http.StatusOK, "", vehicle)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req vehicleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ErrorDetail(c, http.StatusBadRequest, "Validation failed", err)
		return
	}

	vehicle, err := req.toVehicle()
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Repo.Update(id, vehicle)
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Failed to update vehicle", err)
		return
	}
	if updated == nil {
		util.Error(c, http.StatusNotFound, "Vehicle not found")
		return
	}

	util.Success(c, http.StatusOK, "Vehicle updated successfully", updated)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	removed, err := h.Repo.Delete(id)
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Failed to delete vehicle", err)
		return
	}
	if !removed {
		util.Error(c, http.StatusNotFound, "Vehicle not found")
		return
	}

	util.Success(c, http.StatusOK, "Vehicle deleted successfully", nil)
}

// List returns one page of vehicles. search matches vehicle number,
// customer name and mobile number; start_date/end_date bound entry_date
// inclusively. All supplied filters AND together.
func (h *VehicleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.PageSize)))
	if limit <= 0 || limit > 100 {
		limit = h.PageSize
	}
	offset := (page - 1) * limit

	filters := repository.ListFilters{
		Search: strings.TrimSpace(c.Query("search")),
	}
	for _, q := range []struct {
		name string
		dst  *string
	}{
		{"start_date", &filters.StartDate},
		{"end_date", &filters.EndDate},
	} {
		if s := c.Query(q.name); s != "" {
			if _, err := models.ParseDate(s); err != nil {
				util.Error(c, http.StatusBadRequest, q.name+" must be a valid YYYY-MM-DD date")
				return
			}
			*q.dst = s
		}
	}

	vehicles, err := h.Repo.List(limit, offset, filters)
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	var total int64
	if filters.Search == "" && filters.StartDate == "" && filters.EndDate == "" {
		total, err = h.Repo.Count()
	} else {
		total, err = h.Repo.CountFiltered(filters)
	}
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	util.Success(c, http.StatusOK, "", util.Response{
		"vehicles": vehicles,
		"total":    total,
		"pagination": gin.H{
			"currentPage":  page,
			"totalPages":   int(math.Ceil(float64(total) / float64(limit))),
			"totalItems":   total,
			"itemsPerPage": limit,
		},
	})
}

// Stats returns the raw grouped statistics, scoped to ?date= when given.
func (h *VehicleHandler) Stats(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		if _, err := models.ParseDate(date); err != nil {
			util.Error(c, http.StatusBadRequest, "date must be a valid YYYY-MM-DD date")
			return
		}
	}

	stats, err := h.Repo.StatsForDate(date)
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	util.Success(c, http.StatusOK, "", util.Response{
		"vehicleCounts": stats.VehicleCounts,
		"paymentStats":  stats.PaymentStats,
		"totalStats":    stats.Totals,
	})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}
