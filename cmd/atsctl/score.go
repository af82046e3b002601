package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ats-backend/internal/forms"
	"ats-backend/internal/intake"
)

type submissionFile struct {
	Answers forms.Answers `json:"answers"`
}

type scoreOutput struct {
	JobID          string              `json:"jobId"`
	CandidateName  string              `json:"candidateName"`
	CandidateEmail string              `json:"candidateEmail"`
	Score          int                 `json:"score"`
	IsEligible     bool                `json:"isEligible"`
	Errors         []intake.FieldError `json:"errors,omitempty"`
}

func newScoreCmd(open appOpener) *cobra.Command {
	var (
		jobID  string
		inPath string
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Validate and score a submission file without storing it",
		Long:  `Reads {"answers": {...}} from --in and prints the inferred candidate and score for --job.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(inPath)
			if err != nil {
				return fmt.Errorf("read submission: %w", err)
			}
			var sub submissionFile
			if err := json.Unmarshal(raw, &sub); err != nil {
				return fmt.Errorf("parse submission: %w", err)
			}

			ctx := cmd.Context()
			app, err := open(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			out := scoreOutput{JobID: jobID}
			cand, result, err := app.Intake.Preview(ctx, jobID, sub.Answers)
			var verr *intake.ValidationError
			switch {
			case errors.As(err, &verr):
				out.Errors = verr.Fields
			case err != nil:
				return err
			default:
				out.CandidateName = cand.Name
				out.CandidateEmail = cand.Email
				out.Score = result.Percent
				out.IsEligible = result.IsEligible
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return err
			}
			if verr != nil {
				return fmt.Errorf("submission has %d invalid field(s)", len(verr.Fields))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&jobID, "job", "", "Job id whose form scores the submission")
	cmd.Flags().StringVarP(&inPath, "in", "i", "", "Path to a submission JSON file")
	_ = cmd.MarkFlagRequired("job")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
