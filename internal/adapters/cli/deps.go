package cli

import (
	"fmt"

	"github.com/devbush/mov2mp4/internal/adapters/cli/tui"
	"github.com/spf13/cobra"
)

var archiveFlag string

// NewDepsCmd creates the deps subcommand
func NewDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Manage dependencies (ffmpeg)",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show dependency status",
		Args:  cobra.NoArgs,
		RunE:  runDepsStatus,
	}

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install ffmpeg into the bundled directory from a release archive",
		Long: `Extract the ffmpeg binary from a downloaded release archive (.7z or .tar.xz)
into the bundled directory, where mov2mp4 finds it when ffmpeg is not on PATH.`,
		Args: cobra.NoArgs,
		RunE: runDepsInstall,
	}
	installCmd.Flags().StringVar(&archiveFlag, "archive", "", "Path to an ffmpeg .7z or .tar.xz archive")
	installCmd.MarkFlagRequired("archive")

	cmd.AddCommand(statusCmd, installCmd)
	return cmd
}

func runDepsStatus(cmd *cobra.Command, args []string) error {
	app := globalApp
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Dependency Status:")
	fmt.Fprintln(out)

	path, err := app.Locator.Resolve()
	if err != nil {
		fmt.Fprintln(out, "  ffmpeg:   not found")
		fmt.Fprintln(out)
		fmt.Fprintln(out, err.Error())
		return nil
	}

	size := "size unknown"
	if info, err := app.FS.Stat(path); err == nil {
		size = tui.FormatSize(info.Size())
	}
	fmt.Fprintf(out, "  ffmpeg:   installed (%s, %s)\n", path, size)
	fmt.Fprintln(out)

	return nil
}

func runDepsInstall(cmd *cobra.Command, args []string) error {
	app := globalApp
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Installing ffmpeg from %s...\n", archiveFlag)

	path, err := app.Installer.Install(cmd.Context(), archiveFlag, func(written, total int64) {
		if quietFlag {
			return
		}
		if total > 0 {
			pct := float64(written) / float64(total) * 100
			fmt.Fprintf(out, "\rProgress: %.1f%%", pct)
		}
	})
	if err != nil {
		app.Logger.Error("ffmpeg install failed", "archive", archiveFlag, "error", err)
		return err
	}

	app.Logger.Info("ffmpeg installed", "path", path)
	fmt.Fprintf(out, "\nffmpeg installed (%s)\n", path)
	return nil
}
