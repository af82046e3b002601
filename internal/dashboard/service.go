// Package dashboard aggregates pipeline figures for the recruiter home page.
package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ats-backend/internal/applications"
	"ats-backend/internal/jobs"
	"ats-backend/internal/stages"
)

// RecentLimit bounds the recent jobs and applications lists.
const RecentLimit = 5

type JobLister interface {
	List(ctx context.Context, q jobs.Query) ([]jobs.Job, error)
}

type ApplicationLister interface {
	List(ctx context.Context, f applications.ListFilter) ([]applications.Application, error)
}

type StageLister interface {
	List(ctx context.Context) ([]stages.Stage, error)
}

// StageCount is the number of applications sitting in a stage.
type StageCount struct {
	StageID string      `json:"stageId"`
	Name    string      `json:"name"`
	Type    stages.Type `json:"type"`
	Count   int         `json:"count"`
}

// Summary is the dashboard payload.
type Summary struct {
	ActiveJobs         int                        `json:"activeJobs"`
	TotalJobs          int                        `json:"totalJobs"`
	JobsByStatus       map[jobs.Status]int        `json:"jobsByStatus"`
	TotalApplications  int                        `json:"totalApplications"`
	EligibleCandidates int                        `json:"eligibleCandidates"`
	ApplicationsBy     []StageCount               `json:"applicationsByStage"`
	RecentApplications []applications.Application `json:"recentApplications"`
	RecentJobs         []jobs.Job                 `json:"recentJobs"`
}

// Service builds summaries from the job, application and stage stores.
type Service struct {
	Jobs   JobLister
	Apps   ApplicationLister
	Stages StageLister
}

// Summary loads the three collections concurrently and folds them together.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var (
		allJobs   []jobs.Job
		allApps   []applications.Application
		allStages []stages.Stage
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if allJobs, err = s.Jobs.List(gCtx, jobs.Query{}); err != nil {
			return fmt.Errorf("load jobs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if allApps, err = s.Apps.List(gCtx, applications.ListFilter{}); err != nil {
			return fmt.Errorf("load applications: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if allStages, err = s.Stages.List(gCtx); err != nil {
			return fmt.Errorf("load stages: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	return build(allJobs, allApps, allStages), nil
}

func build(allJobs []jobs.Job, allApps []applications.Application, allStages []stages.Stage) Summary {
	byStatus := map[jobs.Status]int{
		jobs.StatusActive: 0,
		jobs.StatusDraft:  0,
		jobs.StatusClosed: 0,
	}
	for _, j := range allJobs {
		byStatus[j.Status]++
	}

	counts := applications.CountByStage(allApps)
	byStage := make([]StageCount, 0, len(allStages))
	for _, st := range allStages {
		byStage = append(byStage, StageCount{StageID: st.ID, Name: st.Name, Type: st.Type, Count: counts[st.ID]})
	}

	recentApps := applications.Recent(allApps, RecentLimit)
	if recentApps == nil {
		recentApps = []applications.Application{}
	}
	recentJobs := jobs.Recent(allJobs, RecentLimit)
	if recentJobs == nil {
		recentJobs = []jobs.Job{}
	}

	return Summary{
		ActiveJobs:         jobs.ActiveCount(allJobs),
		TotalJobs:          len(allJobs),
		JobsByStatus:       byStatus,
		TotalApplications:  len(allApps),
		EligibleCandidates: applications.EligibleCount(allApps),
		ApplicationsBy:     byStage,
		RecentApplications: recentApps,
		RecentJobs:         recentJobs,
	}
}
