package ffmpeg

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/devbush/mov2mp4/internal/domain"
)

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}

// Locator resolves the ffmpeg executable
type Locator struct {
	override   string
	bundledDir string
	lookPath   func(string) (string, error)
	stat       func(string) (os.FileInfo, error)
}

// NewLocator creates a locator. override, when set, is the only location
// tried; otherwise PATH is searched, then bundledDir.
func NewLocator(override, bundledDir string) *Locator {
	return &Locator{
		override:   override,
		bundledDir: bundledDir,
		lookPath:   exec.LookPath,
		stat:       os.Stat,
	}
}

// BundledPath returns where a bundled ffmpeg is expected
func (l *Locator) BundledPath() string {
	return filepath.Join(l.bundledDir, binaryName())
}

// Resolve returns the ffmpeg path or a *domain.EncoderNotFoundError
func (l *Locator) Resolve() (string, error) {
	if l.override != "" {
		if info, err := l.stat(l.override); err == nil && !info.IsDir() {
			return l.override, nil
		}
		return "", &domain.EncoderNotFoundError{
			Binary:   binaryName(),
			Searched: []string{"configured path " + l.override},
		}
	}

	// Check system PATH
	if path, err := l.lookPath(binaryName()); err == nil {
		return path, nil
	}

	// Check bundled location
	bundled := l.BundledPath()
	if info, err := l.stat(bundled); err == nil && !info.IsDir() {
		return bundled, nil
	}

	return "", &domain.EncoderNotFoundError{
		Binary: binaryName(),
		Searched: []string{
			"Installed and available in your system PATH",
			"Located at " + bundled,
		},
	}
}
