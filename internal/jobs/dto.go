package jobs

import "time"

// JobResponse is the outward-facing representation of a job.
type JobResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	Type             string    `json:"type"`
	Description      string    `json:"description"`
	Requirements     []string  `json:"requirements"`
	Responsibilities []string  `json:"responsibilities"`
	Salary           string    `json:"salary,omitempty"`
	Department       string    `json:"department"`
	Status           Status    `json:"status"`
	HasCustomForm    bool      `json:"hasCustomForm"`
	CreatedBy        string    `json:"createdBy"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toResponse(j Job) JobResponse {
	req := j.Requirements
	if req == nil {
		req = []string{}
	}
	resp := j.Responsibilities
	if resp == nil {
		resp = []string{}
	}
	return JobResponse{
		ID:               j.ID,
		Title:            j.Title,
		Company:          j.Company,
		Location:         j.Location,
		Type:             j.Type,
		Description:      j.Description,
		Requirements:     req,
		Responsibilities: resp,
		Salary:           j.Salary,
		Department:       j.Department,
		Status:           j.Status,
		HasCustomForm:    j.HasCustomForm,
		CreatedBy:        j.CreatedBy,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}

func toResponses(all []Job) []JobResponse {
	out := make([]JobResponse, 0, len(all))
	for _, j := range all {
		out = append(out, toResponse(j))
	}
	return out
}
