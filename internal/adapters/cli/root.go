package cli

import (
	"os"

	"github.com/devbush/mov2mp4/internal/adapters/cli/tui"
	"github.com/devbush/mov2mp4/internal/application"
	"github.com/devbush/mov2mp4/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFlag    string
	inputDirFlag  string
	outputDirFlag string
	ffmpegFlag    string
	quietFlag     bool
	verboseFlag   bool

	// Root flags
	deleteFlag bool
	yesFlag    bool

	closeLog = func() error { return nil }
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mov2mp4",
		Short: "Batch convert MOV files to MP4",
		Long: `mov2mp4 converts every .mov file in the input directory to an H.264/AAC
.mp4 in the output directory using ffmpeg.

ffmpeg is looked up on your PATH, then in the bundled directory
(bin/ffmpeg by default). Use 'mov2mp4 deps install' to set up a bundled copy.`,
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
		RunE:               runConvert,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default: ./mov2mp4.yaml or ~/.mov2mp4/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&inputDirFlag, "input-dir", "", "Directory to scan for .mov files")
	rootCmd.PersistentFlags().StringVar(&outputDirFlag, "output-dir", "", "Directory to write .mp4 files to")
	rootCmd.PersistentFlags().StringVar(&ffmpegFlag, "ffmpeg", "", "Path to the ffmpeg binary")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.Flags().BoolVarP(&deleteFlag, "delete", "d", false, "Delete original .mov files after a successful conversion")
	rootCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Do not prompt; use the configured deletion default")

	// Add subcommands
	rootCmd.AddCommand(NewDepsCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

// setup loads config, applies flag overrides and opens the log
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnv(cmd.Context(), config.ResolvePath(configFlag))
	if err != nil {
		return err
	}

	if inputDirFlag != "" {
		cfg.Paths.InputDir = inputDirFlag
	}
	if outputDirFlag != "" {
		cfg.Paths.OutputDir = outputDirFlag
	}
	if ffmpegFlag != "" {
		cfg.Paths.FFmpeg = ffmpegFlag
	}

	logger, cleanup := config.SetupLogger(cfg.Log, cmd.ErrOrStderr(), verboseFlag)
	closeLog = cleanup

	globalApp = NewApp(cfg, logger, afero.NewOsFs())
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	return closeLog()
}

func runConvert(cmd *cobra.Command, args []string) error {
	app := globalApp
	out := cmd.OutOrStdout()

	binPath, err := app.Locator.Resolve()
	if err != nil {
		app.Logger.Error("ffmpeg not found", "error", err)
		return err
	}
	app.Logger.Info("resolved ffmpeg", "path", binPath)

	inputs := deletionInputs{
		flagSet:     cmd.Flags().Changed("delete"),
		flagValue:   deleteFlag,
		skipPrompt:  yesFlag || quietFlag,
		interactive: isTerminal(os.Stdout) && isTerminal(os.Stdin),
		fallback:    app.Config.Defaults.DeleteSources,
	}

	tick, err := app.Config.GetTickInterval()
	if err != nil {
		return err
	}

	renderer := tui.NewTerminalRenderer(out, renderMode(quietFlag, isTerminal(os.Stdout)))
	progress := tui.NewProgressBar(renderer, tick)

	svc := app.NewConvertService(binPath, progress, out)
	// the prompt only appears once there is something to convert
	opts := application.ConvertOptions{
		ConfirmDeletion: func() (bool, error) {
			return resolveDeletion(inputs, tui.RunConfirm)
		},
	}
	if _, err := svc.Run(cmd.Context(), opts); err != nil {
		app.Logger.Error("batch aborted", "error", err)
		return err
	}

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		closeLog()
		os.Exit(1)
	}
}
