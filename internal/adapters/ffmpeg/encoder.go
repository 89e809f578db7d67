package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/devbush/mov2mp4/internal/domain"
	"github.com/devbush/mov2mp4/internal/ports"
	"github.com/spf13/afero"
)

// Fixed encoding parameters
const (
	videoCodec   = "libx264"
	videoPreset  = "medium"
	videoQuality = "23"
	audioCodec   = "aac"
	audioBitrate = "192k"
	threadsAuto  = "0"
)

// HWAccelArgs returns the hardware-acceleration flags for a platform.
// Unknown platforms get none.
func HWAccelArgs(p domain.Platform) []string {
	switch p {
	case domain.PlatformWindows:
		return []string{"-hwaccel", "d3d11va"}
	case domain.PlatformMacOS:
		return []string{"-hwaccel", "videotoolbox"}
	case domain.PlatformLinux:
		return []string{"-hwaccel", "auto"}
	default:
		return nil
	}
}

// BuildArgs assembles the full ffmpeg argument list for one job
func BuildArgs(p domain.Platform, job domain.ConversionJob) []string {
	args := make([]string, 0, 20)
	args = append(args, HWAccelArgs(p)...)
	args = append(args, "-i", job.SourcePath)
	args = append(args, "-c:v", videoCodec, "-preset", videoPreset, "-crf", videoQuality)
	args = append(args, "-c:a", audioCodec, "-b:a", audioBitrate)
	args = append(args, "-threads", threadsAuto)
	args = append(args, job.OutputPath)
	return args
}

// Encoder implements ports.Encoder by running ffmpeg once per job.
// There is no timeout: a hung ffmpeg process blocks the batch.
type Encoder struct {
	binPath  string
	platform domain.Platform
	fs       afero.Fs
	runner   ports.ProcessRunner
	logger   *slog.Logger
}

// NewEncoder creates an encoder for a resolved ffmpeg binary
func NewEncoder(binPath string, fs afero.Fs, runner ports.ProcessRunner, logger *slog.Logger) *Encoder {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Encoder{
		binPath:  binPath,
		platform: domain.CurrentPlatform(),
		fs:       fs,
		runner:   runner,
		logger:   logger,
	}
}

// WithPlatform overrides the detected platform
func (e *Encoder) WithPlatform(p domain.Platform) *Encoder {
	e.platform = p
	return e
}

// BinaryPath returns the ffmpeg executable in use
func (e *Encoder) BinaryPath() string {
	return e.binPath
}

func (e *Encoder) Convert(ctx context.Context, job domain.ConversionJob) domain.Outcome {
	if err := e.fs.MkdirAll(job.OutputDir(), 0755); err != nil {
		return domain.Failed(fmt.Sprintf("%v %s: %v", domain.ErrOutputDir, job.OutputDir(), err))
	}

	args := BuildArgs(e.platform, job)
	e.logger.Debug("running ffmpeg", "bin", e.binPath, "args", args)

	stderr, err := e.runner.Run(ctx, e.binPath, args)
	if err == nil {
		return domain.Success{}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return domain.Failed(decodeDiagnostic(stderr))
	}
	// ffmpeg never started or was killed before reporting a status
	if diag := decodeDiagnostic(stderr); diag != "" {
		return domain.Failed(diag + ": " + err.Error())
	}
	return domain.Failed(err.Error())
}

// decodeDiagnostic turns captured stderr into text, replacing invalid UTF-8
func decodeDiagnostic(stderr []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(stderr), "�"))
}

// ExecRunner runs processes with os/exec, discarding stdout
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	return stderrBuf.Bytes(), err
}

var _ ports.Encoder = (*Encoder)(nil)
var _ ports.ProcessRunner = ExecRunner{}
