package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newStyleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "style [border|route <key>]",
		Short: "List styled groups, or show the style of one border or route",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				borders, routes := c.app.StyleKeys()
				_, _ = fmt.Fprintf(out, "border: %s\n", strings.Join(borders, " "))
				_, _ = fmt.Fprintf(out, "route:  %s\n", strings.Join(routes, " "))
				return nil
			}
			if len(args) != 2 {
				return zerr.With(zerr.Wrap(domain.ErrParse, "expected a kind and a key"), "input", strings.Join(args, " "))
			}

			switch args[0] {
			case "border":
				s := c.app.BorderStyle(args[1])
				_, _ = fmt.Fprintf(out, "color: %s\nstyle: %s\n", orUnset(s.Color), s.Style)
			case "route":
				s := c.app.RouteStyle(args[1])
				width := "unset"
				if s.HasWidth {
					width = fmt.Sprintf("%g", s.Width)
				}
				_, _ = fmt.Fprintf(out, "color: %s\nstyle: %s\nwidth: %s\n", orUnset(s.Color), s.Style, width)
			default:
				return zerr.With(zerr.Wrap(domain.ErrParse, "kind must be border or route"), "input", args[0])
			}
			return nil
		},
	}
}

func orUnset(s string) string {
	if s == "" {
		return "unset"
	}
	return s
}
