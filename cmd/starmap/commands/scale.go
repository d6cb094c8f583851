package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newScaleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scale <value>",
		Short: "Convert a zoom level between pixels per parsec and log form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloat(args[0])
			if err != nil {
				return err
			}
			isLog, _ := cmd.Flags().GetBool("log")
			report, err := c.app.ConvertScale(v, isLog)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "linear: %g\nlog:    %g\n", report.Linear, report.Log)
			return nil
		},
	}
	cmd.Flags().BoolP("log", "l", false, "Treat the value as a log scale")
	return cmd
}
