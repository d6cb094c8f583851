package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newMainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mains <worlds.tsv>",
		Short: "Group the worlds of a tab-separated world list into mains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.app.Mains(args[0])
			if err != nil {
				return err
			}
			verbose, _ := cmd.Flags().GetBool("verbose")

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%d worlds, %d mains\n", report.Worlds, len(report.Mains))
			for i, m := range report.Mains {
				_, _ = fmt.Fprintf(out, "main %d: %d worlds from %s\n", i+1, len(m), report.Index.Format(m[0]))
				if !verbose {
					continue
				}
				for _, h := range m {
					_, _ = fmt.Fprintf(out, "  %s\n", report.Index.Format(h))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "List every world of every main")
	return cmd
}
