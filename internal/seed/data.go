package seed

import (
	"time"

	"ats-backend/internal/applications"
	"ats-backend/internal/forms"
	"ats-backend/internal/jobs"
	"ats-backend/internal/stages"
)

const day = 24 * time.Hour

// Dataset is the demo content written on first start.
type Dataset struct {
	Jobs         []jobs.Job
	Applications []applications.Application
	Forms        []forms.CustomForm
	Stages       []stages.Stage
}

// Demo builds the demo dataset with timestamps relative to now.
func Demo(now time.Time) Dataset {
	now = now.UTC()
	pipeline := stages.Defaults()
	return Dataset{
		Jobs:         demoJobs(now),
		Applications: demoApplications(now, pipeline),
		Forms:        demoForms(now),
		Stages:       pipeline,
	}
}

func demoJobs(now time.Time) []jobs.Job {
	return []jobs.Job{
		{
			ID:          "j1",
			Title:       "Frontend Developer",
			Company:     "TechCorp",
			Location:    "Remote",
			Type:        "Full-time",
			Description: "We are looking for a skilled Frontend Developer to join our team.",
			Requirements: []string{
				"Experience with React",
				"Proficiency in JavaScript/TypeScript",
				"Knowledge of modern CSS techniques",
			},
			Responsibilities: []string{
				"Developing user interfaces",
				"Implementing responsive design",
				"Optimizing application performance",
			},
			Salary:        "$80,000 - $120,000",
			Department:    "Engineering",
			Status:        jobs.StatusActive,
			HasCustomForm: true,
			CreatedBy:     "1",
			CreatedAt:     now.Add(-7 * day),
			UpdatedAt:     now,
		},
		{
			ID:          "j2",
			Title:       "UX Designer",
			Company:     "DesignHub",
			Location:    "New York, NY",
			Type:        "Full-time",
			Description: "Join our design team to create beautiful and functional user experiences.",
			Requirements: []string{
				"Proficiency with design tools like Figma",
				"Portfolio of design work",
				"User research experience",
			},
			Responsibilities: []string{
				"Creating wireframes and prototypes",
				"Conducting user testing",
				"Collaborating with developers",
			},
			Salary:     "$90,000 - $130,000",
			Department: "Design",
			Status:     jobs.StatusActive,
			CreatedBy:  "1",
			CreatedAt:  now.Add(-14 * day),
			UpdatedAt:  now,
		},
		{
			ID:          "j3",
			Title:       "Backend Engineer",
			Company:     "ServerStack",
			Location:    "Remote",
			Type:        "Contract",
			Description: "Build robust and scalable backend systems for our cloud platform.",
			Requirements: []string{
				"Experience with Node.js",
				"Knowledge of database systems",
				"API design experience",
			},
			Responsibilities: []string{
				"Developing server-side logic",
				"Optimizing application performance",
				"Implementing security measures",
			},
			Salary:     "$100,000 - $140,000",
			Department: "Engineering",
			Status:     jobs.StatusDraft,
			CreatedBy:  "1",
			CreatedAt:  now.Add(-3 * day),
			UpdatedAt:  now,
		},
	}
}

func demoApplications(now time.Time, pipeline []stages.Stage) []applications.Application {
	return []applications.Application{
		{
			ID:             "a1",
			JobID:          "j1",
			CandidateName:  "John Smith",
			CandidateEmail: "john@example.com",
			CandidatePhone: "555-123-4567",
			Resume:         "https://example.com/john-resume.pdf",
			CoverLetter:    "I am excited to apply for this position...",
			CurrentStage:   pipeline[1],
			StageHistory: []applications.StageEntry{
				{StageID: "s1", EnteredAt: now.Add(-5 * day)},
				{StageID: "s2", EnteredAt: now.Add(-2 * day), Notes: "Good initial screening call"},
			},
			Score: 85,
			ScoreBreakdown: []applications.ScoreItem{
				{Criteria: "Technical Skills", Score: 4, MaxScore: 5},
				{Criteria: "Experience", Score: 4, MaxScore: 5},
				{Criteria: "Communication", Score: 5, MaxScore: 5},
			},
			Answers: forms.Answers{
				"yearsExperience":      forms.TextAnswer("5"),
				"programmingLanguages": forms.ListAnswer("JavaScript", "TypeScript", "Python"),
				"availability":         forms.TextAnswer("Immediately"),
			},
			IsEligible: true,
			CreatedAt:  now.Add(-5 * day),
			UpdatedAt:  now.Add(-2 * day),
		},
		{
			ID:             "a2",
			JobID:          "j1",
			CandidateName:  "Emily Johnson",
			CandidateEmail: "emily@example.com",
			CandidatePhone: "555-987-6543",
			Resume:         "https://example.com/emily-resume.pdf",
			CurrentStage:   pipeline[2],
			StageHistory: []applications.StageEntry{
				{StageID: "s1", EnteredAt: now.Add(-7 * day)},
				{StageID: "s2", EnteredAt: now.Add(-4 * day)},
				{StageID: "s3", EnteredAt: now.Add(-1 * day), Notes: "Great interview. Strong React knowledge."},
			},
			Score: 92,
			ScoreBreakdown: []applications.ScoreItem{
				{Criteria: "Technical Skills", Score: 5, MaxScore: 5},
				{Criteria: "Experience", Score: 4, MaxScore: 5},
				{Criteria: "Communication", Score: 5, MaxScore: 5},
			},
			Answers: forms.Answers{
				"yearsExperience":      forms.TextAnswer("7"),
				"programmingLanguages": forms.ListAnswer("JavaScript", "TypeScript", "Go"),
				"availability":         forms.TextAnswer("Two weeks notice"),
			},
			IsEligible: true,
			CreatedAt:  now.Add(-7 * day),
			UpdatedAt:  now.Add(-1 * day),
		},
		{
			ID:             "a3",
			JobID:          "j2",
			CandidateName:  "Michael Brown",
			CandidateEmail: "michael@example.com",
			Resume:         "https://example.com/michael-resume.pdf",
			CurrentStage:   pipeline[0],
			StageHistory: []applications.StageEntry{
				{StageID: "s1", EnteredAt: now.Add(-1 * day)},
			},
			Score: 65,
			ScoreBreakdown: []applications.ScoreItem{
				{Criteria: "Design Skills", Score: 3, MaxScore: 5},
				{Criteria: "Experience", Score: 3, MaxScore: 5},
				{Criteria: "Portfolio", Score: 4, MaxScore: 5},
			},
			Answers: forms.Answers{
				"portfolioUrl":    forms.TextAnswer("https://michaelbrown.design"),
				"designTools":     forms.ListAnswer("Figma", "Sketch", "Adobe XD"),
				"yearsExperience": forms.TextAnswer("3"),
			},
			IsEligible: true,
			CreatedAt:  now.Add(-1 * day),
			UpdatedAt:  now.Add(-1 * day),
		},
	}
}

func demoForms(now time.Time) []forms.CustomForm {
	lo, hi, weight := 0.0, 50.0, 3.0
	return []forms.CustomForm{{
		ID:          "f1",
		JobID:       "j1",
		Name:        "Frontend Developer Application",
		Description: "Please fill out this application for our Frontend Developer position.",
		Sections: []forms.Section{
			{
				ID:          "sec1",
				Title:       "Personal Information",
				Description: "Tell us about yourself",
				Fields: []forms.Field{
					{ID: "name", Type: forms.FieldText, Label: "Full Name", Placeholder: "Enter your full name", Required: true},
					{ID: "email", Type: forms.FieldText, Label: "Email", Placeholder: "Enter your email", Required: true},
					{ID: "phone", Type: forms.FieldText, Label: "Phone Number", Placeholder: "Enter your phone number"},
				},
			},
			{
				ID:    "sec2",
				Title: "Professional Experience",
				Fields: []forms.Field{
					{ID: "resume", Type: forms.FieldFile, Label: "Resume/CV", Required: true},
					{
						ID: "yearsExperience", Type: forms.FieldNumber, Label: "Years of Experience", Required: true,
						Validation: &forms.Validation{Min: &lo, Max: &hi}, Weight: &weight,
					},
					{
						ID: "programmingLanguages", Type: forms.FieldCheckbox, Label: "Programming Languages", Required: true,
						Options: []string{"JavaScript", "TypeScript", "Python", "Java", "C#", "Go", "Ruby", "PHP"},
						Weight:  &weight,
					},
				},
			},
			{
				ID:    "sec3",
				Title: "Additional Information",
				Fields: []forms.Field{
					{
						ID: "availability", Type: forms.FieldSelect, Label: "Availability", Required: true,
						Options: []string{"Immediately", "Two weeks notice", "One month notice", "More than one month"},
					},
					{ID: "coverLetter", Type: forms.FieldTextarea, Label: "Cover Letter", Placeholder: "Tell us why you are interested in this position"},
				},
			},
		},
		CreatedAt: now.Add(-7 * day),
		UpdatedAt: now,
	}}
}
