package stages

// Type classifies a pipeline stage.
type Type string

const (
	TypeApplied    Type = "applied"
	TypeScreening  Type = "screening"
	TypeInterview  Type = "interview"
	TypeTechnical  Type = "technical"
	TypeAssessment Type = "assessment"
	TypeReference  Type = "reference"
	TypeOffer      Type = "offer"
	TypeHired      Type = "hired"
	TypeRejected   Type = "rejected"
)

// Valid reports whether t is one of the known stage types.
func (t Type) Valid() bool {
	switch t {
	case TypeApplied, TypeScreening, TypeInterview, TypeTechnical, TypeAssessment,
		TypeReference, TypeOffer, TypeHired, TypeRejected:
		return true
	}
	return false
}

// Stage is one column of the hiring pipeline.
type Stage struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  Type   `json:"type"`
	Order int    `json:"order"`
	Color string `json:"color,omitempty"`
}

// Input describes a stage to add.
type Input struct {
	Name  string `json:"name" validate:"required,max=60"`
	Type  Type   `json:"type" validate:"omitempty,oneof=applied screening interview technical assessment reference offer hired rejected"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// Defaults returns the built-in pipeline.
func Defaults() []Stage {
	return []Stage{
		{ID: "s1", Name: "Applied", Type: TypeApplied, Order: 0, Color: "#3b82f6"},
		{ID: "s2", Name: "Screening", Type: TypeScreening, Order: 1, Color: "#8b5cf6"},
		{ID: "s3", Name: "Interview", Type: TypeInterview, Order: 2, Color: "#10b981"},
		{ID: "s4", Name: "Technical", Type: TypeTechnical, Order: 3, Color: "#f59e0b"},
		{ID: "s5", Name: "Offer", Type: TypeOffer, Order: 4, Color: "#ef4444"},
		{ID: "s6", Name: "Hired", Type: TypeHired, Order: 5, Color: "#22c55e"},
		{ID: "s7", Name: "Rejected", Type: TypeRejected, Order: 6, Color: "#6b7280"},
	}
}
