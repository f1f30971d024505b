package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/partsquote/gateway/internal/core/domain"
	"github.com/partsquote/gateway/internal/core/ports"
)

// AccessEventHandler serves the access audit trail to administrators.
type AccessEventHandler struct {
	service ports.AccessLogService
}

func NewAccessEventHandler(service ports.AccessLogService) *AccessEventHandler {
	return &AccessEventHandler{service: service}
}

type accessEventQuery struct {
	Limit  string `query:"limit"  validate:"omitempty,number"`
	Reason string `query:"reason" validate:"omitempty,oneof=missing invalid expired role_mismatch unrecognized_role"`
	Kind   string `query:"kind"   validate:"omitempty,oneof=denied signed_in signed_out"`
}

type accessEventsResponse struct {
	Events []*domain.AccessEvent `json:"events"`
	Count  int                   `json:"count"`
}

// List handles GET /api/admin/access-events.
//
// @Summary      Recent access events
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int     false  "Maximum number of events (default 50, max 200)"
// @Param        reason  query     string  false  "Denial reason"
// @Param        kind    query     string  false  "Event kind"
// @Success      200     {object}  accessEventsResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /api/admin/access-events [get]
func (h *AccessEventHandler) List(c echo.Context) error {
	var q accessEventQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	filter := ports.AccessEventFilter{
		Kind:   domain.AccessEventKind(q.Kind),
		Reason: q.Reason,
	}
	if q.Limit != "" {
		limit, err := strconv.Atoi(q.Limit)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "limit must be a non-negative integer")
		}
		filter.Limit = limit
	}

	events, err := h.service.Recent(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if events == nil {
		events = []*domain.AccessEvent{}
	}

	return c.JSON(http.StatusOK, accessEventsResponse{Events: events, Count: len(events)})
}
