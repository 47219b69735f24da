package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
	"github.com/SimplyHuzu/body-works-gym-rep/internal/dto"
	"github.com/SimplyHuzu/body-works-gym-rep/internal/service"
	"github.com/SimplyHuzu/body-works-gym-rep/pkg/response"
	"github.com/SimplyHuzu/body-works-gym-rep/pkg/telemetry"
)

// ResourceHandler serves the resource catalog and per-resource availability
type ResourceHandler struct {
	catalog  service.CatalogService
	calendar service.CalendarService
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(catalog service.CatalogService, calendar service.CalendarService) *ResourceHandler {
	return &ResourceHandler{catalog: catalog, calendar: calendar}
}

// List handles GET /api/v1/resources
func (h *ResourceHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "ResourceHandler.List")
	defer span.End()

	resources, err := h.catalog.ListResources(ctx)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, dto.ToResourceResponses(resources))
}

// Get handles GET /api/v1/resources/:id
func (h *ResourceHandler) Get(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "ResourceHandler.Get")
	defer span.End()

	resource, err := h.catalog.GetResource(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			response.NotFound(c, "resource not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, dto.ToResourceResponse(resource))
}

// Availability handles GET /api/v1/resources/:id/availability?date=YYYY-MM-DD
func (h *ResourceHandler) Availability(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "ResourceHandler.Availability")
	defer span.End()

	date, err := dto.ParseDate(c.Query("date"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resourceID := c.Param("id")
	slots, err := h.calendar.Availability(ctx, resourceID, date)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			response.NotFound(c, "resource not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, dto.NewAvailabilityResponse(resourceID, date, slots))
}
