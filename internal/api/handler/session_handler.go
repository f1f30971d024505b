package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/partsquote/gateway/internal/api/middleware"
	"github.com/partsquote/gateway/internal/core/ports"
)

// SessionHandler exposes the session state derived from the request credential.
type SessionHandler struct {
	sessions   ports.SessionService
	cookieName string
}

func NewSessionHandler(sessions ports.SessionService, cookieName string) *SessionHandler {
	return &SessionHandler{sessions: sessions, cookieName: cookieName}
}

// Current handles GET /api/session. It always answers 200; an
// unauthenticated caller gets isAuthenticated=false and an error label.
//
// @Summary      Current session state
// @Tags         session
// @Produce      json
// @Success      200  {object}  domain.SessionState
// @Router       /api/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	state := h.sessions.State(c.Request().Context(), middleware.ExtractCredential(c, h.cookieName))
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.JSON(http.StatusOK, state)
}
