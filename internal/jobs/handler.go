package jobs

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

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

// RegisterRoutes attaches job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.list)
	rg.POST("/jobs", h.create)
	rg.GET("/jobs/:id", h.get)
	rg.PATCH("/jobs/:id", h.update)
	rg.DELETE("/jobs/:id", h.delete)
}

// RegisterPublicRoutes exposes active postings to candidates.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/postings", h.postings)
}

func (h *Handler) list(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	all, err := h.Svc.List(c.Request.Context(), q)
	if err != nil {
		respond.Internal(c, "failed to list jobs", err)
		return
	}
	respond.OK(c, toResponses(all))
}

func (h *Handler) postings(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context(), Query{
		Keyword:   c.Query("q"),
		Filter:    Filter{Status: StatusActive},
		SortBy:    "createdAt",
		Ascending: false,
	})
	if err != nil {
		respond.Internal(c, "failed to list postings", err)
		return
	}
	respond.OK(c, toResponses(all))
}

func (h *Handler) create(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	in.CreatedBy = middleware.UserIDFromContext(c)

	job, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err, "failed to create job")
		return
	}
	middleware.TagJob(c, job.ID)
	respond.JSON(c, http.StatusCreated, toResponse(job))
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	middleware.TagJob(c, id)

	job, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "failed to fetch job")
		return
	}
	respond.OK(c, toResponse(job))
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	middleware.TagJob(c, id)

	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	job, err := h.Svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.writeError(c, err, "failed to update job")
		return
	}
	respond.OK(c, toResponse(job))
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	middleware.TagJob(c, id)

	removed, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		respond.Internal(c, "failed to delete job", err)
		return
	}
	if !removed {
		respond.NotFound(c, "job not found")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.NotFound(c, "job not found")
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid job", validation.Details(err))
	default:
		respond.Internal(c, fallback, err)
	}
}

func parseQuery(c *gin.Context) (Query, error) {
	q := Query{
		Keyword: c.Query("q"),
		Filter: Filter{
			Status:     Status(strings.ToLower(strings.TrimSpace(c.Query("status")))),
			Department: strings.TrimSpace(c.Query("department")),
			Location:   strings.TrimSpace(c.Query("location")),
			Type:       strings.TrimSpace(c.Query("type")),
		},
		SortBy:    c.Query("sort"),
		Ascending: !strings.EqualFold(c.Query("order"), "desc"),
	}
	if q.Filter.Status != "" && !q.Filter.Status.Valid() {
		return Query{}, errors.New("status must be one of: active draft closed")
	}
	if q.SortBy != "" && !SortableField(q.SortBy) {
		return Query{}, errors.New("unsupported sort field")
	}
	if raw := c.Query("hasCustomForm"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Query{}, errors.New("hasCustomForm must be a boolean")
		}
		q.Filter.HasCustomForm = &v
	}
	if raw := c.Query("createdAfter"); raw != "" {
		t, err := parseTime(raw)
		if err != nil {
			return Query{}, errors.New("createdAfter must be RFC3339 or YYYY-MM-DD")
		}
		q.Filter.CreatedAfter = &t
	}
	if raw := c.Query("createdBefore"); raw != "" {
		t, err := parseTime(raw)
		if err != nil {
			return Query{}, errors.New("createdBefore must be RFC3339 or YYYY-MM-DD")
		}
		q.Filter.CreatedBefore = &t
	}
	return q, nil
}

func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
