package dashboard

import (
	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.summary)
}

func (h *Handler) summary(c *gin.Context) {
	sum, err := h.Svc.Summary(c.Request.Context())
	if err != nil {
		respond.Internal(c, "failed to load dashboard", err)
		return
	}
	respond.OK(c, sum)
}
