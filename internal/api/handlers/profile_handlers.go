package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	"github.com/trayd-platform/trayd_service/internal/domain/services/profile"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// ProfileHandler serves member profile reads and updates.
type ProfileHandler struct {
	service *profile.Service
	logger  *logger.Logger
}

func NewProfileHandler(service *profile.Service, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{service: service, logger: log}
}

// GetProfile returns the member's profile.
// GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	p, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, p)
}

// UpdateProfile applies the non-empty fields of the request.
// PATCH /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req entities.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	p, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, p)
}
