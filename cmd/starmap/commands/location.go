package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/starmap/internal/core/domain"
)

func (c *CLI) newHexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hex <location>...",
		Short: "Convert locations between absolute and sector-relative form",
		Long: `Each location is either an absolute "x,y" pair or a "<Sector Name> <XXYY>"
string. Both forms are printed on one line per location.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				report, err := c.app.Locate(arg)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "%s\t%s\n", report.Hex, report.Label)
			}
			return nil
		},
	}
}

func (c *CLI) newLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate <location>",
		Short: "Describe a hex: coordinates, map position and neighbours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.app.Locate(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "absolute: %s\n", report.Hex)
			_, _ = fmt.Fprintf(out, "sector:   %d,%d\n", report.Relative.SectorX, report.Relative.SectorY)
			_, _ = fmt.Fprintf(out, "label:    %s\n", report.Label)
			_, _ = fmt.Fprintf(out, "map:      %.4f,%.4f\n", report.Map.X, report.Map.Y)
			for i, d := range domain.Directions {
				_, _ = fmt.Fprintf(out, "%-3s       %s\n", d.String()+":", report.Neighbors[i])
			}
			return nil
		},
	}
}

func (c *CLI) newDistanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance <from> <to>",
		Short: "Print the number of hex steps between two locations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.app.Distance(args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
}
