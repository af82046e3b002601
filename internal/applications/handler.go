package applications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/shared/validation"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recruiter application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/applications", h.list)
	rg.GET("/applications/recent", h.recent)
	rg.GET("/applications/stage-counts", h.stageCounts)
	rg.GET("/applications/:id", h.get)
	rg.PATCH("/applications/:id", h.update)
	rg.DELETE("/applications/:id", h.delete)
	rg.POST("/applications/:id/stage", h.moveStage)
}

type stageRequest struct {
	StageID string `json:"stageId" binding:"required"`
	Notes   string `json:"notes"`
}

func (h *Handler) list(c *gin.Context) {
	f := ListFilter{JobID: c.Query("jobId"), StageID: c.Query("stageId")}
	middleware.TagJob(c, f.JobID)

	all, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		respond.Internal(c, "failed to list applications", err)
		return
	}
	respond.OK(c, all)
}

func (h *Handler) recent(c *gin.Context) {
	limit := DefaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be between 1 and 100", nil)
			return
		}
		limit = n
	}
	all, err := h.Svc.Recent(c.Request.Context(), limit)
	if err != nil {
		respond.Internal(c, "failed to list recent applications", err)
		return
	}
	respond.OK(c, all)
}

func (h *Handler) stageCounts(c *gin.Context) {
	jobID := c.Query("jobId")
	middleware.TagJob(c, jobID)

	counts, err := h.Svc.CountByStage(c.Request.Context(), jobID)
	if err != nil {
		respond.Internal(c, "failed to count applications", err)
		return
	}
	respond.OK(c, counts)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	middleware.TagApplication(c, id)

	app, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed to fetch application")
		return
	}
	middleware.TagJob(c, app.JobID)
	respond.OK(c, app)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	middleware.TagApplication(c, id)

	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	app, err := h.Svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, err, "failed to update application")
		return
	}
	middleware.TagJob(c, app.JobID)
	respond.OK(c, app)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	middleware.TagApplication(c, id)

	removed, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		respond.Internal(c, "failed to delete application", err)
		return
	}
	if !removed {
		respond.NotFound(c, "application not found")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) moveStage(c *gin.Context) {
	id := c.Param("id")
	middleware.TagApplication(c, id)

	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "stageId is required", nil)
		return
	}
	app, err := h.Svc.UpdateStage(c.Request.Context(), id, req.StageID, req.Notes)
	if err != nil {
		writeError(c, err, "failed to move application")
		return
	}
	middleware.TagJob(c, app.JobID)
	if n := len(app.StageHistory); n >= 2 {
		middleware.TagStageTransition(c, app.StageHistory[n-2].StageID, app.StageHistory[n-1].StageID)
	}
	respond.OK(c, app)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.NotFound(c, err.Error())
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid application", validation.Details(err))
	default:
		respond.Internal(c, fallback, err)
	}
}
