// Package auth holds the mocked recruiter directory and token issuing.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	sharedauth "ats-backend/internal/shared/auth"
	"ats-backend/internal/shared/storage/kv"
	"ats-backend/internal/shared/telemetry"
	"ats-backend/internal/shared/validation"
)

// CollectionKey is the store key holding recruiter accounts.
const CollectionKey = "recruiters"

const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password"
)

// Service registers recruiters and exchanges credentials for tokens.
type Service struct {
	Accounts *kv.Collection[Recruiter]
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
	Now  func() time.Time
}

// NewService builds a Service over store.
func NewService(store kv.Store) *Service {
	return &Service{Accounts: kv.NewCollection[Recruiter](store, CollectionKey, nil)}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) hash(password string) (string, error) {
	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// SeedDemo writes the demo account when no accounts exist yet.
func (s *Service) SeedDemo(ctx context.Context) (bool, error) {
	hash, err := s.hash(DemoPassword)
	if err != nil {
		return false, err
	}
	return s.Accounts.SeedIfAbsent(ctx, []Recruiter{{
		ID:           "1",
		Email:        DemoEmail,
		Name:         "Demo User",
		Company:      "ATS Demo Company",
		Role:         DefaultRole,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}})
}

// Register creates an account with a unique email.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Recruiter, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Company = strings.TrimSpace(in.Company)
	if err := validation.Struct(in); err != nil {
		return Recruiter{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return Recruiter{}, err
	}

	rec := Recruiter{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         in.Name,
		Company:      in.Company,
		Role:         DefaultRole,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	err = s.Accounts.Update(ctx, func(all []Recruiter) ([]Recruiter, error) {
		for _, r := range all {
			if r.Email == rec.Email {
				return nil, ErrEmailTaken
			}
		}
		return append(all, rec), nil
	})
	if err != nil {
		return Recruiter{}, err
	}
	telemetry.Info("recruiter registered", map[string]any{"user_id": rec.ID})
	return rec, nil
}

// Login checks credentials and returns the account with a signed token.
func (s *Service) Login(ctx context.Context, in LoginInput) (Recruiter, string, error) {
	if err := validation.Struct(in); err != nil {
		return Recruiter{}, "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	email := normalizeEmail(in.Email)
	all, err := s.Accounts.Load(ctx)
	if err != nil {
		return Recruiter{}, "", err
	}
	for _, r := range all {
		if r.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(r.PasswordHash), []byte(in.Password)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return Recruiter{}, "", ErrInvalidCredentials
			}
			return Recruiter{}, "", fmt.Errorf("compare password: %w", err)
		}
		token, err := s.issue(r)
		if err != nil {
			return Recruiter{}, "", err
		}
		return r, token, nil
	}
	return Recruiter{}, "", ErrInvalidCredentials
}

// issue signs a token for an existing account.
func (s *Service) issue(r Recruiter) (string, error) {
	return sharedauth.SignJWT(sharedauth.Claims{
		Email:            r.Email,
		Name:             r.Name,
		Company:          r.Company,
		Role:             r.Role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: r.ID},
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
