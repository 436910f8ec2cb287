package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/petarpopovic013-oss/barbershop/internal/domain/schedule"
	"github.com/petarpopovic013-oss/barbershop/internal/httperr"
	"github.com/petarpopovic013-oss/barbershop/internal/httpresp"
	"github.com/petarpopovic013-oss/barbershop/internal/infra/repository"
	"github.com/petarpopovic013-oss/barbershop/internal/models"
	ucReservation "github.com/petarpopovic013-oss/barbershop/internal/usecase/reservation"
	"github.com/petarpopovic013-oss/barbershop/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationsHandler struct {
	repo     schedule.Repository
	policy   schedule.Policy
	createUC *ucReservation.CreateReservation
}

func NewReservationsHandler(
	repo schedule.Repository,
	policy schedule.Policy,
	createUC *ucReservation.CreateReservation,
) *ReservationsHandler {
	return &ReservationsHandler{
		repo:     repo,
		policy:   policy,
		createUC: createUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	BarberID   int64   `json:"barberId"`
	ServiceID  int64   `json:"serviceId"`
	ServiceIDs []int64 `json:"serviceIds"`

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail"`

	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	Notes string `json:"notes"`

	// Optional display strings forwarded to the notification webhook.
	LocalDate string `json:"localDate"`
	LocalTime string `json:"localTime"`
}

// Business rejection codes surfaced to the booking widget.
var businessMessages = map[string]string{
	"barber_not_found":      "Unknown barber",
	"service_not_found":     "Unknown service",
	"invalid_phone":         "Invalid phone number format",
	"invalid_time_range":    "Invalid booking time",
	"day_unavailable":       "Selected day is not available for booking",
	"outside_working_hours": "Selected time is outside working hours",
	"too_soon":              "This time can no longer be booked",
	"slot_taken":            "This time slot has just been taken",
}

// ======================================================
// GET /api/reservations
// ======================================================

func (h *ReservationsHandler) List(c *gin.Context) {
	barberID, err := strconv.ParseInt(c.Query("barberId"), 10, 64)
	if err != nil || barberID <= 0 {
		httperr.BadRequest(c, "A valid barberId is required")
		return
	}

	var window schedule.Interval

	switch {
	case c.Query("dayStart") != "" && c.Query("dayEnd") != "":
		from, errFrom := time.Parse(time.RFC3339, c.Query("dayStart"))
		to, errTo := time.Parse(time.RFC3339, c.Query("dayEnd"))
		if errFrom != nil || errTo != nil || !from.Before(to) {
			httperr.BadRequest(c, "dayStart and dayEnd must be valid timestamps")
			return
		}
		window = schedule.Interval{Start: from, End: to}

	case c.Query("date") != "":
		window, err = h.policy.DayBounds(c.Query("date"))
		if err != nil {
			httperr.BadRequest(c, "date must be formatted as YYYY-MM-DD")
			return
		}

	default:
		httperr.BadRequest(c, "Either date or both dayStart and dayEnd are required")
		return
	}

	rows, err := h.repo.ListReservationsBetween(
		c.Request.Context(),
		barberID,
		window.Start,
		window.End,
	)
	if err != nil {
		httperr.Internal(c, "Failed to load reservations")
		return
	}

	payload := gin.H{"reservations": reservationTimes(rows)}

	// The widget asks for the day flag together with the busy list so it
	// can grey the whole day out in one round trip.
	if v := c.Query("includeAvailability"); v == "1" || v == "true" {
		// Calendar bucketing always happens in the shop timezone; a
		// UTC-literal range would otherwise consult the previous day.
		date := models.DateOnly(window.Start.In(h.policy.Location).Format(models.DateLayout))
		ov, err := h.repo.GetOverride(c.Request.Context(), barberID, date)
		if err != nil {
			httperr.Internal(c, "Failed to load availability")
			return
		}
		payload["dayAvailable"] = ov == nil || ov.IsAvailable
		if ov != nil {
			payload["availability"] = ov
		}
	}

	httpresp.OK(c, payload)
}

func reservationTimes(rows []models.Reservation) []gin.H {
	out := make([]gin.H, 0, len(rows))
	for _, r := range rows {
		out = append(out, gin.H{
			"start_time": r.StartTime.Format(time.RFC3339),
			"end_time":   r.EndTime.Format(time.RFC3339),
		})
	}
	return out
}

// ======================================================
// POST /api/reservations
// ======================================================

func (h *ReservationsHandler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	in, fieldErrs := h.buildInput(&req)
	if len(fieldErrs) > 0 {
		httperr.Validation(c, "Invalid reservation data", fieldErrs)
		return
	}

	out, err := h.createUC.Execute(c.Request.Context(), *in)
	if err != nil {
		h.writeCreateError(c, err)
		return
	}

	payload := gin.H{
		"reservationId": out.ReservationID,
		"message":       "Reservation created successfully",
	}
	if out.CustomerID != nil {
		payload["customerId"] = *out.CustomerID
	}
	if out.Warning != "" {
		payload["warning"] = out.Warning
	}
	httpresp.Created(c, payload)
}

// buildInput validates field by field so the widget can highlight every
// broken input at once.
func (h *ReservationsHandler) buildInput(
	req *CreateReservationRequest,
) (*ucReservation.CreateInput, []httperr.FieldError) {

	var fieldErrs []httperr.FieldError
	fail := func(field, message string) {
		fieldErrs = append(fieldErrs, httperr.FieldError{Field: field, Message: message})
	}

	if req.BarberID <= 0 {
		fail("barberId", "barberId is required")
	}

	serviceIDs := make([]int64, 0, len(req.ServiceIDs)+1)
	if req.ServiceID > 0 {
		serviceIDs = append(serviceIDs, req.ServiceID)
	}
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			fail("serviceIds", "service ids must be positive")
			break
		}
		serviceIDs = append(serviceIDs, id)
	}
	if len(serviceIDs) == 0 {
		fail("serviceIds", "at least one service is required")
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		fail("customerName", "customerName is required")
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		fail("customerPhone", "customerPhone is required")
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if email != "" && !validators.IsValidEmail(email) {
		fail("customerEmail", "customerEmail is not a valid address")
	}

	var start, end time.Time
	var err error
	if start, err = time.Parse(time.RFC3339, req.StartTime); err != nil {
		fail("startTime", "startTime must be an RFC3339 timestamp")
	}
	if end, err = time.Parse(time.RFC3339, req.EndTime); err != nil {
		fail("endTime", "endTime must be an RFC3339 timestamp")
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	return &ucReservation.CreateInput{
		BarberID:      req.BarberID,
		ServiceIDs:    serviceIDs,
		CustomerName:  name,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: email,
		StartTime:     start,
		EndTime:       end,
		Notes:         strings.TrimSpace(req.Notes),
		LocalDate:     req.LocalDate,
		LocalTime:     req.LocalTime,
	}, nil
}

func (h *ReservationsHandler) writeCreateError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		msg, known := businessMessages[code]
		if !known {
			msg = "Reservation was rejected"
		}
		httperr.BadRequest(c, msg)
		return
	}

	if errors.Is(err, repository.ErrPermissionDenied) {
		httperr.Forbidden(c, "Database permission denied")
		return
	}

	httperr.Internal(c, "Failed to create reservation")
}
