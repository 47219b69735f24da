package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/dto"
	"github.com/SimplyHuzu/body-works-gym-rep/internal/service"
	"github.com/SimplyHuzu/body-works-gym-rep/pkg/response"
	"github.com/SimplyHuzu/body-works-gym-rep/pkg/telemetry"
)

// SuggestionHandler serves ranked booking suggestions
type SuggestionHandler struct {
	suggestions service.SuggestionService
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(suggestions service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestions: suggestions}
}

// Suggest handles GET /api/v1/suggestions?user_id=
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "SuggestionHandler.Suggest")
	defer span.End()

	userID := c.Query("user_id")
	if userID == "" {
		response.BadRequest(c, "user_id is required")
		return
	}

	suggestions, err := h.suggestions.Suggest(ctx, userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, dto.ToSuggestionResponses(suggestions))
}
