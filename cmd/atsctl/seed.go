package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ats-backend/internal/seed"
)

func newSeedCmd(open appOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write demo jobs, applications, form, stages and recruiter into absent keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := open(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			rep, err := seed.Apply(ctx, app.Seed, seed.Demo(time.Now()))
			if err != nil {
				return err
			}
			created, err := app.Auth.SeedDemo(ctx)
			if err != nil {
				return fmt.Errorf("seed demo recruiter: %w", err)
			}
			if created {
				rep.Seeded = append(rep.Seeded, "recruiters")
			}

			out := cmd.OutOrStdout()
			if len(rep.Seeded) == 0 {
				fmt.Fprintln(out, "nothing to seed; every key already exists")
				return nil
			}
			fmt.Fprintf(out, "seeded: %s\n", strings.Join(rep.Seeded, ", "))
			return nil
		},
	}
}
