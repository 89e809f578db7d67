package cli

import (
	"io"
	"log/slog"

	"github.com/devbush/mov2mp4/internal/adapters/cli/tui"
	"github.com/devbush/mov2mp4/internal/adapters/ffmpeg"
	"github.com/devbush/mov2mp4/internal/adapters/scan"
	"github.com/devbush/mov2mp4/internal/application"
	"github.com/devbush/mov2mp4/internal/config"
	"github.com/devbush/mov2mp4/internal/ports"
	"github.com/spf13/afero"
)

// App holds all application dependencies
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	FS        afero.Fs
	Locator   *ffmpeg.Locator
	Installer *ffmpeg.Installer
}

// NewApp wires the adapters that do not depend on a resolved encoder
func NewApp(cfg *config.Config, logger *slog.Logger, fs afero.Fs) *App {
	return &App{
		Config:    cfg,
		Logger:    logger,
		FS:        fs,
		Locator:   ffmpeg.NewLocator(cfg.Paths.FFmpeg, cfg.Paths.BundledDir),
		Installer: ffmpeg.NewInstaller(fs, cfg.Paths.BundledDir),
	}
}

// NewConvertService builds the batch orchestrator around a resolved ffmpeg
func (a *App) NewConvertService(binPath string, progress ports.ProgressReporter, out io.Writer) *application.ConvertService {
	source := scan.NewScanner(a.FS, a.Config.Paths.InputDir, a.Config.Paths.OutputDir)
	encoder := ffmpeg.NewEncoder(binPath, a.FS, ffmpeg.ExecRunner{}, a.Logger)

	return application.NewConvertService(source, encoder, progress, a.FS, out, a.Logger).
		WithMarks(application.Marks{
			Success: tui.SuccessMark(),
			Failure: tui.FailureMark(),
			Warning: tui.WarningMark(),
		})
}

var globalApp *App
