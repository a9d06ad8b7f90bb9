package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/josuesanchez96/umessenger/internal/store"
)

// UserHandlers provides HTTP handlers for user operations.
type UserHandlers struct {
	store store.Store
	log   *zerolog.Logger
}

// NewUserHandlers creates a new user handlers instance.
func NewUserHandlers(st store.Store, logger *zerolog.Logger) *UserHandlers {
	return &UserHandlers{
		store: st,
		log:   logger,
	}
}

// CheckUsernameRequest represents the availability check request body.
type CheckUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

// CheckUsernameResponse represents a successful availability response.
type CheckUsernameResponse struct {
	Available bool `json:"available"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CheckUsername reports whether a candidate username is free, i.e. not in
// the presence set right now.
// POST /api/username/check
func (h *UserHandlers) CheckUsername(c *gin.Context) {
	var req CheckUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid username check request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid username"})
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid username"})
		return
	}

	taken, err := h.store.IsActive(c.Request.Context(), username)
	if err != nil {
		h.log.Error().Err(err).Str("username", username).Msg("username availability check failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	if taken {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "username is already taken"})
		return
	}

	c.JSON(http.StatusOK, CheckUsernameResponse{Available: true})
}
