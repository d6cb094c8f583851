package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/starmap/internal/app"
	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/starmap/internal/engine/geometry"
	"go.trai.ch/zerr"
)

func (c *CLI) newStarfieldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "starfield <minX> <minY> <maxX> <maxY>",
		Short: "Generate the starfield behind a map-space rectangle",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var bounds [4]float64
			for i, arg := range args {
				v, err := parseFloat(arg)
				if err != nil {
					return err
				}
				bounds[i] = v
			}
			report, err := c.app.Starfield(bounds[0], bounds[1], bounds[2], bounds[3])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "chunks: %d\npoints: %d\ndigest: %016x\n",
				len(report.Chunks), report.Points, report.Digest)
			return nil
		},
	}
}

func (c *CLI) newGridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grid <WxH>...",
		Short: "Build hex-grid overlays for viewport sizes in parsecs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes := make([]geometry.GridKey, 0, len(args))
			for _, arg := range args {
				key, err := parseGridSize(arg)
				if err != nil {
					return err
				}
				sizes = append(sizes, key)
			}

			out := cmd.OutOrStdout()
			var last app.GridReport
			for _, r := range c.app.Grid(sizes...) {
				_, _ = fmt.Fprintf(out, "%dx%d: %d hexes, %d points, digest %016x\n",
					r.Width, r.Height, r.Hexes, r.Points, r.Digest)
				last = r
			}
			_, _ = fmt.Fprintf(out, "cache: %d hits, %d misses, %d evictions\n",
				last.Stats.Hits, last.Stats.Misses, last.Stats.Evictions)
			return nil
		},
	}
}

func parseGridSize(s string) (geometry.GridKey, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	w, werr := strconv.Atoi(ws)
	h, herr := strconv.Atoi(hs)
	if !ok || werr != nil || herr != nil || w < 0 || h < 0 {
		return geometry.GridKey{}, zerr.With(zerr.Wrap(domain.ErrParse, "grid size must be WxH"), "input", s)
	}
	return geometry.GridKey{Width: w, Height: h}, nil
}
