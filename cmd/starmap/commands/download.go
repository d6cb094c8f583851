package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/starmap/internal/core/domain"
)

func (c *CLI) newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <url> <dest>",
		Short: "Download a file with retries, writing it atomically",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.downloadOptions(cmd)
			if retries, _ := cmd.Flags().GetInt("retries"); retries >= 0 {
				opts.Retries = retries
			}
			if progress, _ := cmd.Flags().GetBool("progress"); progress {
				errOut := cmd.ErrOrStderr()
				opts.Progress = func(read, total int64) {
					if total > 0 {
						_, _ = fmt.Fprintf(errOut, "%d/%d bytes\n", read, total)
						return
					}
					_, _ = fmt.Fprintf(errOut, "%d bytes\n", read)
				}
			}

			outcome, err := c.app.Download(cmd.Context(), args[0], args[1], opts)
			switch outcome {
			case domain.OutcomeSucceeded:
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), args[1])
				return nil
			case domain.OutcomeCancelled:
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "download cancelled")
				return nil
			default:
				return err
			}
		},
	}
	cmd.Flags().Int("retries", -1, "Retries after the first attempt (default from config)")
	cmd.Flags().Bool("progress", false, "Report bytes received on stderr")
	return cmd
}
