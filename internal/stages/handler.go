package stages

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/shared/validation"
)

// Handler exposes the stage catalog over HTTP. Each mutating request applies
// one draft operation and commits it.
type Handler struct {
	Catalog *Catalog
}

// NewHandler constructs a Handler.
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{Catalog: catalog}
}

// RegisterRoutes attaches stage routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stages", h.list)
	rg.PUT("/stages", h.replace)
	rg.POST("/stages", h.add)
	rg.POST("/stages/reset", h.reset)
	rg.PATCH("/stages/:id", h.update)
	rg.DELETE("/stages/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Catalog.List(c.Request.Context())
	if err != nil {
		respond.Internal(c, "failed to list stages", err)
		return
	}
	respond.OK(c, all)
}

func (h *Handler) replace(c *gin.Context) {
	var list []Stage
	if err := c.ShouldBindJSON(&list); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	saved, err := h.Catalog.Save(c.Request.Context(), list)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, saved)
}

func (h *Handler) add(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	var added Stage
	saved, err := h.Catalog.Edit(c.Request.Context(), func(d *Draft) error {
		s, err := d.Add(in)
		added = s
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}
	for _, s := range saved {
		if s.ID == added.ID {
			added = s
		}
	}
	respond.JSON(c, http.StatusCreated, added)
}

type updateRequest struct {
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	Type     *Type   `json:"type"`
	Position *int    `json:"position"`
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	saved, err := h.Catalog.Edit(c.Request.Context(), func(d *Draft) error {
		if req.Name != nil {
			if err := d.Rename(id, *req.Name); err != nil {
				return err
			}
		}
		if req.Color != nil {
			if err := d.Recolor(id, *req.Color); err != nil {
				return err
			}
		}
		if req.Type != nil {
			if err := d.SetType(id, *req.Type); err != nil {
				return err
			}
		}
		if req.Position != nil {
			if err := d.Move(id, *req.Position); err != nil {
				return err
			}
		}
		if d.index(id) < 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, saved)
}

func (h *Handler) remove(c *gin.Context) {
	id := c.Param("id")
	saved, err := h.Catalog.Edit(c.Request.Context(), func(d *Draft) error {
		return d.Remove(id)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, saved)
}

func (h *Handler) reset(c *gin.Context) {
	saved, err := h.Catalog.Reset(c.Request.Context())
	if err != nil {
		respond.Internal(c, "failed to reset stages", err)
		return
	}
	respond.OK(c, saved)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.NotFound(c, "stage not found")
	case errors.Is(err, ErrMinStages):
		respond.Error(c, http.StatusConflict, "min_stages", err.Error(), nil)
	case errors.Is(err, ErrDuplicateName):
		respond.Error(c, http.StatusConflict, "duplicate_name", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		var details any
		if d := validation.Details(err); d["_"] == "" {
			details = d
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), details)
	default:
		respond.Internal(c, "failed to update stages", err)
	}
}
