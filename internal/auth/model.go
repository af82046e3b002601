package auth

import "time"

// DefaultRole is given to every recruiter account.
const DefaultRole = "HR Manager"

// Recruiter is a back-office account.
type Recruiter struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Company      string    `json:"company"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the public view of a recruiter.
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Role    string `json:"role"`
}

func (r Recruiter) Profile() Profile {
	return Profile{ID: r.ID, Email: r.Email, Name: r.Name, Company: r.Company, Role: r.Role}
}

// RegisterInput creates a new recruiter account.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Company  string `json:"company" validate:"required,max=200"`
}

// LoginInput carries credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
