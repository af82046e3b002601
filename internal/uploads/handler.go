package uploads

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recruiter download routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/uploads/:id", h.download)
	rg.GET("/uploads/:id/text", h.text)
}

// RegisterPublicRoutes attaches the candidate upload route to the rate-limited apply group.
func (h *Handler) RegisterPublicRoutes(apply *gin.RouterGroup) {
	apply.POST("/apply/:jobId/files", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	jobID := c.Param("jobId")
	middleware.TagJob(c, jobID)
	// multipart framing adds a little on top of the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBytes+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds 10 MiB", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	up, err := h.Svc.Upload(c.Request.Context(), jobID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrJobNotFound):
			respond.NotFound(c, "job not found")
		case errors.Is(err, ErrTooLarge):
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds 10 MiB", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Internal(c, "failed to store upload", err)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(up))
}

func (h *Handler) download(c *gin.Context) {
	up, rc, err := h.Svc.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.NotFound(c, "upload not found")
			return
		}
		respond.Internal(c, "failed to open upload", err)
		return
	}
	defer rc.Close()
	middleware.TagJob(c, up.JobID)

	c.DataFromReader(http.StatusOK, up.SizeBytes, up.MimeType, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", up.FileName),
	})
}

func (h *Handler) text(c *gin.Context) {
	id := c.Param("id")
	text, err := h.Svc.Text(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.NotFound(c, "upload not found")
		case errors.Is(err, ErrNoText):
			respond.Error(c, http.StatusNotFound, "no_text", "no text could be extracted from this file", nil)
		default:
			respond.Internal(c, "failed to read upload text", err)
		}
		return
	}
	respond.OK(c, textResponse{UploadID: id, Text: text, Chars: utf8.RuneCountInString(text)})
}
