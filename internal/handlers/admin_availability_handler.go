package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/petarpopovic013-oss/barbershop/internal/domain/schedule"
	"github.com/petarpopovic013-oss/barbershop/internal/httperr"
	"github.com/petarpopovic013-oss/barbershop/internal/httpresp"
	"github.com/petarpopovic013-oss/barbershop/internal/infra/repository"
	"github.com/petarpopovic013-oss/barbershop/internal/models"
	ucAvailability "github.com/petarpopovic013-oss/barbershop/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AdminAvailabilityHandler struct {
	repo            schedule.Repository
	markUnavailable *ucAvailability.MarkUnavailable
	markAvailable   *ucAvailability.MarkAvailable
}

func NewAdminAvailabilityHandler(
	repo schedule.Repository,
	markUnavailable *ucAvailability.MarkUnavailable,
	markAvailable *ucAvailability.MarkAvailable,
) *AdminAvailabilityHandler {
	return &AdminAvailabilityHandler{
		repo:            repo,
		markUnavailable: markUnavailable,
		markAvailable:   markAvailable,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AvailabilityWriteRequest struct {
	BarberID int64    `json:"barberId"`
	Dates    []string `json:"dates"`

	WorkingHoursStart string `json:"workingHoursStart"`
	WorkingHoursEnd   string `json:"workingHoursEnd"`
}

// ======================================================
// GET /api/admin/availability
// ======================================================

func (h *AdminAvailabilityHandler) List(c *gin.Context) {
	barberID, err := strconv.ParseInt(c.Query("barberId"), 10, 64)
	if err != nil || barberID <= 0 {
		httperr.BadRequest(c, "A valid barberId is required")
		return
	}

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		httperr.BadRequest(c, "startDate and endDate are required")
		return
	}

	rows, err := h.repo.ListOverrides(
		c.Request.Context(),
		barberID,
		models.DateOnly(startDate),
		models.DateOnly(endDate),
	)
	if err != nil {
		httperr.Internal(c, "Failed to load availability")
		return
	}

	httpresp.OK(c, gin.H{"availability": rows})
}

// ======================================================
// POST /api/admin/availability
// ======================================================

func (h *AdminAvailabilityHandler) MarkUnavailable(c *gin.Context) {
	req, ok := h.bindWrite(c)
	if !ok {
		return
	}

	err := h.markUnavailable.Execute(
		c.Request.Context(),
		req.BarberID,
		req.Dates,
		req.WorkingHoursStart,
		req.WorkingHoursEnd,
	)
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Dates marked unavailable"})
}

// ======================================================
// DELETE /api/admin/availability
// ======================================================

func (h *AdminAvailabilityHandler) MarkAvailable(c *gin.Context) {
	req, ok := h.bindWrite(c)
	if !ok {
		return
	}

	if err := h.markAvailable.Execute(c.Request.Context(), req.BarberID, req.Dates); err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Dates reverted to available"})
}

// ======================================================
// HELPERS
// ======================================================

func (h *AdminAvailabilityHandler) bindWrite(c *gin.Context) (*AvailabilityWriteRequest, bool) {
	var req AvailabilityWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return nil, false
	}
	if req.BarberID <= 0 {
		httperr.BadRequest(c, "A valid barberId is required")
		return nil, false
	}
	return &req, true
}

func (h *AdminAvailabilityHandler) writeError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		switch code {
		case "no_dates":
			httperr.BadRequest(c, "At least one date is required")
		case "invalid_date":
			httperr.BadRequest(c, "Dates must be formatted as YYYY-MM-DD")
		default:
			httperr.BadRequest(c, "Invalid availability request")
		}
		return
	}

	if errors.Is(err, repository.ErrPermissionDenied) {
		httperr.Forbidden(c, "Database permission denied")
		return
	}

	httperr.Internal(c, "Failed to update availability")
}
