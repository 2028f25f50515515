package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chatbot-dev/chatbot/app"
	"github.com/chatbot-dev/chatbot/pkg/routes"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the page routes",
		Long:  `Print the routes generated from the component tree, one per line.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := routes.Generate(app.New())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tTITLE")
			for _, r := range list {
				fmt.Fprintf(tw, "%s\t%s\n", r.Path, r.Title)
			}
			return tw.Flush()
		},
	}
}
