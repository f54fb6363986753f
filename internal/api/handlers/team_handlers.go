package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trayd-platform/trayd_service/internal/domain/services/team"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// TeamHandler serves referral and genealogy queries.
type TeamHandler struct {
	service *team.Service
	logger  *logger.Logger
}

func NewTeamHandler(service *team.Service, log *logger.Logger) *TeamHandler {
	return &TeamHandler{service: service, logger: log}
}

// GetDirectReferrals lists the members the user sponsored.
// GET /api/v1/team/referrals
func (h *TeamHandler) GetDirectReferrals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	members, err := h.service.GetDirectReferrals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, members)
}

// GetGenealogy renders the member's binary tree.
// GET /api/v1/team/genealogy
func (h *TeamHandler) GetGenealogy(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tree, err := h.service.GetGenealogy(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, tree)
}
