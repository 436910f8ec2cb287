package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/petarpopovic013-oss/barbershop/internal/httperr"
	"github.com/petarpopovic013-oss/barbershop/internal/httpresp"
	ucAvailability "github.com/petarpopovic013-oss/barbershop/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type BookingAvailabilityHandler struct {
	overviewUC *ucAvailability.RangeOverview
}

func NewBookingAvailabilityHandler(
	overviewUC *ucAvailability.RangeOverview,
) *BookingAvailabilityHandler {
	return &BookingAvailabilityHandler{overviewUC: overviewUC}
}

// ======================================================
// GET /api/booking-availability
// ======================================================

func (h *BookingAvailabilityHandler) Get(c *gin.Context) {
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

	overview, err := h.overviewUC.Execute(c.Request.Context(), barberID, startDate, endDate)
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			switch code {
			case "invalid_date":
				httperr.BadRequest(c, "Dates must be formatted as YYYY-MM-DD")
			case "invalid_date_range":
				httperr.BadRequest(c, "Date range is inverted or too wide")
			default:
				httperr.BadRequest(c, "Invalid availability query")
			}
			return
		}
		httperr.Internal(c, "Failed to load availability")
		return
	}

	httpresp.OK(c, gin.H{
		"availability": overview.Overrides,
		"reservations": reservationTimes(overview.Reservations),
		"days":         overview.Days,
	})
}
