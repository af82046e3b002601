package intake

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/applications"
	"ats-backend/internal/forms"
	"ats-backend/internal/jobs"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/stages"
)

// Handler serves the public application form.
type Handler struct {
	Engine *Engine
}

// NewHandler constructs a Handler.
func NewHandler(engine *Engine) *Handler {
	return &Handler{Engine: engine}
}

// RegisterRoutes attaches the candidate-facing routes. apply is the group
// that carries submission rate limiting.
func (h *Handler) RegisterRoutes(rg, apply *gin.RouterGroup) {
	rg.GET("/apply/:jobId", h.form)
	apply.POST("/apply/:jobId", h.submit)
}

type postingView struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Type             string   `json:"type"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Salary           string   `json:"salary,omitempty"`
	Department       string   `json:"department"`
}

type formView struct {
	Job  postingView      `json:"job"`
	Form forms.CustomForm `json:"form"`
}

type submitRequest struct {
	Answers forms.Answers `json:"answers"`
}

type submitResponse struct {
	ID             string       `json:"id"`
	JobID          string       `json:"jobId"`
	CandidateName  string       `json:"candidateName"`
	CandidateEmail string       `json:"candidateEmail"`
	Score          int          `json:"score"`
	IsEligible     bool         `json:"isEligible"`
	CurrentStage   stages.Stage `json:"currentStage"`
}

func (h *Handler) form(c *gin.Context) {
	jobID := c.Param("jobId")
	middleware.TagJob(c, jobID)

	job, form, err := h.Engine.FormFor(c.Request.Context(), jobID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, formView{Job: toPosting(job), Form: form})
}

func (h *Handler) submit(c *gin.Context) {
	jobID := c.Param("jobId")
	middleware.TagJob(c, jobID)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", gin.H{"_": err.Error()})
		return
	}
	if req.Answers == nil {
		req.Answers = forms.Answers{}
	}
	sub, err := h.Engine.Submit(c.Request.Context(), jobID, req.Answers)
	if err != nil {
		writeError(c, err)
		return
	}
	app := sub.Application
	middleware.TagApplication(c, app.ID)
	respond.JSON(c, http.StatusCreated, submitResponse{
		ID:             app.ID,
		JobID:          app.JobID,
		CandidateName:  app.CandidateName,
		CandidateEmail: app.CandidateEmail,
		Score:          app.Score,
		IsEligible:     app.IsEligible,
		CurrentStage:   app.CurrentStage,
	})
}

func writeError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "Please fill in all required fields", verr.Details())
	case errors.Is(err, ErrJobNotFound):
		respond.NotFound(c, "job not found")
	case errors.Is(err, ErrNoForm):
		respond.Error(c, http.StatusNotFound, "no_form", "job has no application form", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, applications.ErrInvalidInput):
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "application could not be stored", err.Error())
	default:
		respond.Internal(c, "failed to submit application", err)
	}
}

func toPosting(j jobs.Job) postingView {
	return postingView{
		ID:               j.ID,
		Title:            j.Title,
		Company:          j.Company,
		Location:         j.Location,
		Type:             j.Type,
		Description:      j.Description,
		Requirements:     j.Requirements,
		Responsibilities: j.Responsibilities,
		Salary:           j.Salary,
		Department:       j.Department,
	}
}
