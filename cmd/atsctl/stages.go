package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ats-backend/internal/stages"
)

func newStagesCmd(open appOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stages",
		Short: "Inspect or reset the hiring pipeline",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stages in order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := open(cmd.Context())
				if err != nil {
					return err
				}
				defer app.Close()
				list, err := app.Stages.List(cmd.Context())
				if err != nil {
					return err
				}
				return printStages(cmd.OutOrStdout(), list)
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Replace the catalog with the default pipeline",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := open(cmd.Context())
				if err != nil {
					return err
				}
				defer app.Close()
				list, err := app.Stages.Reset(cmd.Context())
				if err != nil {
					return err
				}
				return printStages(cmd.OutOrStdout(), list)
			},
		},
	)
	return cmd
}

func printStages(w io.Writer, list []stages.Stage) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tID\tNAME\tTYPE")
	for _, s := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Order, s.ID, s.Name, s.Type)
	}
	return tw.Flush()
}
