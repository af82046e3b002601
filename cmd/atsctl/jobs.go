package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ats-backend/internal/applications"
	"ats-backend/internal/jobs"
)

func newJobsCmd(open appOpener) *cobra.Command {
	var (
		status  string
		keyword string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List jobs with their application counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if status != "" && !jobs.Status(status).Valid() {
				return fmt.Errorf("unknown status %q", status)
			}
			ctx := cmd.Context()
			app, err := open(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			all, err := app.Jobs.List(ctx, jobs.Query{
				Keyword: keyword,
				Filter:  jobs.Filter{Status: jobs.Status(status)},
				SortBy:  "createdAt",
			})
			if err != nil {
				return err
			}
			apps, err := app.Applications.List(ctx, applications.ListFilter{})
			if err != nil {
				return err
			}
			perJob := make(map[string]int, len(all))
			for _, a := range apps {
				perJob[a.JobID]++
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tSTATUS\tFORM\tAPPLICATIONS")
			for _, j := range all {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%d\n", j.ID, j.Title, j.Company, j.Status, j.HasCustomForm, perJob[j.ID])
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&status, "status", "", "Only jobs with this status (active, draft, closed)")
	list.Flags().StringVarP(&keyword, "keyword", "k", "", "Search title, company and description")

	cmd := &cobra.Command{Use: "jobs", Short: "Inspect job postings"}
	cmd.AddCommand(list)
	return cmd
}
