package forms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/jobs"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/shared/validation"
)

const maxFormBody = 1 << 20

// JobGetter looks up the job a form or share link belongs to.
type JobGetter interface {
	Get(ctx context.Context, id string) (jobs.Job, error)
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc     *Service
	Jobs    JobGetter
	BaseURL string
}

// NewHandler constructs a Handler. baseURL prefixes share links.
func NewHandler(svc *Service, jobs JobGetter, baseURL string) *Handler {
	return &Handler{Svc: svc, Jobs: jobs, BaseURL: baseURL}
}

// RegisterRoutes attaches form routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs/:id/form", h.getForJob)
	rg.PUT("/jobs/:id/form", h.putForJob)
	rg.GET("/jobs/:id/share", h.share)
	rg.GET("/forms", h.list)
	rg.GET("/forms/:id", h.get)
	rg.PATCH("/forms/:id", h.update)
	rg.DELETE("/forms/:id", h.delete)
	rg.POST("/forms/:id/sections", h.addSection)
	rg.POST("/forms/:id/sections/:sectionId/fields", h.addField)
}

type shareResponse struct {
	JobID     string `json:"jobId"`
	ShareURL  string `json:"shareUrl"`
	EmbedCode string `json:"embedCode"`
}

func (h *Handler) getForJob(c *gin.Context) {
	jobID := c.Param("id")
	middleware.TagJob(c, jobID)

	form, err := h.Svc.GetByJob(c.Request.Context(), jobID)
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "no_form", "job has no application form", nil)
		return
	}
	if err != nil {
		respond.Internal(c, "failed to fetch form", err)
		return
	}
	respond.OK(c, form)
}

func (h *Handler) putForJob(c *gin.Context) {
	jobID := c.Param("id")
	middleware.TagJob(c, jobID)

	var in Input
	if !bindPayload(c, &in) {
		return
	}
	in.JobID = jobID
	form, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err, "failed to save form")
		return
	}
	respond.OK(c, form)
}

func (h *Handler) share(c *gin.Context) {
	jobID := c.Param("id")
	middleware.TagJob(c, jobID)

	if h.Jobs != nil {
		if _, err := h.Jobs.Get(c.Request.Context(), jobID); err != nil {
			h.writeError(c, err, "failed to fetch job")
			return
		}
	}
	url := ShareURL(h.BaseURL, jobID)
	respond.OK(c, shareResponse{JobID: jobID, ShareURL: url, EmbedCode: EmbedSnippet(url)})
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Internal(c, "failed to list forms", err)
		return
	}
	respond.OK(c, all)
}

func (h *Handler) get(c *gin.Context) {
	form, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch form")
		return
	}
	middleware.TagJob(c, form.JobID)
	respond.OK(c, form)
}

func (h *Handler) update(c *gin.Context) {
	var patch Patch
	if !bindPayload(c, &patch) {
		return
	}
	form, err := h.Svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.writeError(c, err, "failed to update form")
		return
	}
	middleware.TagJob(c, form.JobID)
	respond.OK(c, form)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete form")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) addSection(c *gin.Context) {
	var in SectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	section, err := h.Svc.AddSection(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err, "failed to add section")
		return
	}
	respond.JSON(c, http.StatusCreated, section)
}

func (h *Handler) addField(c *gin.Context) {
	var in FieldInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	field, err := h.Svc.AddField(c.Request.Context(), c.Param("id"), c.Param("sectionId"), in)
	if err != nil {
		h.writeError(c, err, "failed to add field")
		return
	}
	respond.JSON(c, http.StatusCreated, field)
}

// bindPayload checks the body against the form schema before decoding it into dst.
func bindPayload(c *gin.Context, dst any) bool {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxFormBody))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return false
	}
	problems, err := ValidatePayload(raw)
	if err != nil {
		respond.Internal(c, "form schema unavailable", err)
		return false
	}
	if len(problems) > 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "form does not match schema", problems)
		return false
	}
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(dst); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return false
	}
	return true
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrJobNotFound), errors.Is(err, jobs.ErrNotFound):
		respond.NotFound(c, "job not found")
	case errors.Is(err, ErrNotFound):
		respond.NotFound(c, err.Error())
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid form", validation.Details(err))
	default:
		respond.Internal(c, fallback, err)
	}
}
