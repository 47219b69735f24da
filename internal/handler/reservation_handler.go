package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
	"github.com/SimplyHuzu/body-works-gym-rep/internal/dto"
	"github.com/SimplyHuzu/body-works-gym-rep/internal/service"
	"github.com/SimplyHuzu/body-works-gym-rep/pkg/response"
	"github.com/SimplyHuzu/body-works-gym-rep/pkg/telemetry"
)

// userIDHeader carries the caller identity for cancel and history reads.
// Bodies carry it explicitly on create so a reservation records its owner.
const userIDHeader = "X-User-ID"

// ReservationHandler is the HTTP write surface for reservations
type ReservationHandler struct {
	reservations service.ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservations service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// Create handles POST /api/v1/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "ReservationHandler.Create")
	defer span.End()

	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	start, end, err := req.Interval()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reservation, err := h.reservations.Reserve(ctx, req.ResourceID, req.UserID, start, end)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, dto.ToReservationResponse(reservation))
}

// Get handles GET /api/v1/reservations/:id
func (h *ReservationHandler) Get(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "ReservationHandler.Get")
	defer span.End()

	reservation, err := h.reservations.GetReservation(ctx, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, dto.ToReservationResponse(reservation))
}

// Cancel handles DELETE /api/v1/reservations/:id
func (h *ReservationHandler) Cancel(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "ReservationHandler.Cancel")
	defer span.End()

	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		response.BadRequest(c, "missing "+userIDHeader+" header")
		return
	}

	if err := h.reservations.Cancel(ctx, c.Param("id"), userID); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, gin.H{"cancelled": true})
}

// ListByUser handles GET /api/v1/users/:id/reservations
func (h *ReservationHandler) ListByUser(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "ReservationHandler.ListByUser")
	defer span.End()

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	reservations, err := h.reservations.ListUserReservations(ctx, c.Param("id"), limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, dto.ToReservationResponses(reservations))
}

func (h *ReservationHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInterval):
		response.BadRequest(c, "invalid interval: start must precede end and lie within the booking window")
	case errors.Is(err, domain.ErrResourceNotFound):
		response.NotFound(c, "resource not found")
	case errors.Is(err, domain.ErrReservationNotFound):
		response.NotFound(c, "reservation not found")
	case errors.Is(err, domain.ErrForbidden):
		response.Forbidden(c, "reservation belongs to another user")
	case errors.Is(err, domain.ErrSlotConflict):
		response.Conflict(c, "SLOT_CONFLICT", "slot capacity exceeded, pick another interval")
	default:
		response.InternalError(c, err)
	}
}
