package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	defaultTileSize  = 256
	defaultTileScale = 64
	defaultParallel  = 4
)

func (c *CLI) newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <location>...",
		Short: "Fetch map tiles centred on locations, through the tile cache",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			scale, _ := flags.GetFloat64("scale")
			width, _ := flags.GetInt("width")
			height, _ := flags.GetInt("height")
			style, _ := flags.GetString("style")
			milieu, _ := flags.GetString("milieu")
			options, _ := flags.GetUint32("options")
			parallel, _ := flags.GetInt("parallel")
			outDir, _ := flags.GetString("out")
			format, err := formatFlag(cmd)
			if err != nil {
				return err
			}
			if progress, _ := flags.GetBool("progress"); progress {
				c.app.ReportProgress(cmd.ErrOrStderr())
			}

			reqs := make([]domain.TileRequest, 0, len(args))
			for _, arg := range args {
				h, err := c.app.ParseHex(arg)
				if err != nil {
					return err
				}
				reqs = append(reqs, domain.TileRequest{
					Milieu:  milieu,
					Style:   style,
					Options: options,
					Center:  h,
					Scale:   scale,
					Width:   width,
					Height:  height,
					Format:  format,
				})
			}

			resources, outcome, err := c.app.FetchTiles(cmd.Context(), reqs, parallel, c.downloadOptions(cmd))
			if outcome == domain.OutcomeCancelled {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "fetch cancelled")
				return nil
			}
			if err != nil {
				return err
			}

			for i, res := range resources {
				name := fmt.Sprintf("tile_%d_%d.%s", reqs[i].Center.X, reqs[i].Center.Y, res.Format.Extension())
				if err := emit(cmd.OutOrStdout(), outDir, name, res); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Float64("scale", defaultTileScale, "Pixels per parsec")
	cmd.Flags().Int("width", defaultTileSize, "Tile width in pixels")
	cmd.Flags().Int("height", defaultTileSize, "Tile height in pixels")
	cmd.Flags().String("style", "", "Map style name")
	cmd.Flags().String("milieu", "", "Milieu of the map data, e.g. M1105")
	cmd.Flags().Bool("progress", false, "Report each transfer on stderr")
	cmd.Flags().Uint32("options", 0, "Display option bitmask")
	cmd.Flags().String("format", "png", "Image format: png, jpeg or svg")
	cmd.Flags().IntP("parallel", "p", defaultParallel, "Maximum concurrent transfers")
	cmd.Flags().StringP("out", "o", "", "Directory to write images to")
	return cmd
}

func (c *CLI) newPosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poster <sector>",
		Short: "Fetch the render of a whole sector, or one subsector of it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			subsector, _ := flags.GetString("subsector")
			scale, _ := flags.GetFloat64("scale")
			style, _ := flags.GetString("style")
			milieu, _ := flags.GetString("milieu")
			outDir, _ := flags.GetString("out")
			format, err := formatFlag(cmd)
			if err != nil {
				return err
			}
			if progress, _ := flags.GetBool("progress"); progress {
				c.app.ReportProgress(cmd.ErrOrStderr())
			}

			req := domain.PosterRequest{
				Milieu:    milieu,
				Style:     style,
				Sector:    args[0],
				Subsector: subsector,
				Scale:     scale,
				Format:    format,
			}
			res, outcome, err := c.app.Poster(cmd.Context(), req, c.downloadOptions(cmd))
			if outcome == domain.OutcomeCancelled {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "poster cancelled")
				return nil
			}
			if err != nil {
				return err
			}
			name := fmt.Sprintf("poster%s.%s", subsector, res.Format.Extension())
			return emit(cmd.OutOrStdout(), outDir, name, res)
		},
	}
	cmd.Flags().String("subsector", "", "Subsector letter A-P")
	cmd.Flags().Float64("scale", 32, "Pixels per parsec")
	cmd.Flags().String("style", "", "Map style name")
	cmd.Flags().String("milieu", "", "Milieu of the map data, e.g. M1105")
	cmd.Flags().Bool("progress", false, "Report each transfer on stderr")
	cmd.Flags().String("format", "png", "Image format: png, jpeg or svg")
	cmd.Flags().StringP("out", "o", "", "Directory to write the image to")
	return cmd
}

func (c *CLI) newPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove every cached tile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.PurgeTiles(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "tile cache purged")
			return nil
		},
	}
}

func formatFlag(cmd *cobra.Command) (domain.Format, error) {
	raw, _ := cmd.Flags().GetString("format")
	format, ok := domain.ParseFormat(raw)
	if !ok {
		return domain.FormatUnknown, zerr.With(zerr.Wrap(domain.ErrParse, "unknown image format"), "input", raw)
	}
	return format, nil
}

// emit writes res into dir, or describes it on out when dir is empty.
func emit(out io.Writer, dir, name string, res domain.CachedResource) error {
	if dir == "" {
		_, _ = fmt.Fprintf(out, "%s\t%d bytes\t%s\n", res.Format, len(res.Data), res.Key)
		return nil
	}
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "dir", dir)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, res.Data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write image"), "path", path)
	}
	_, _ = fmt.Fprintln(out, path)
	return nil
}
