package ffmpeg

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/devbush/mov2mp4/internal/domain"
)

func TestBinaryName(t *testing.T) {
	name := binaryName()

	if runtime.GOOS == "windows" {
		if name != "ffmpeg.exe" {
			t.Errorf("binaryName() = %s, want ffmpeg.exe on Windows", name)
		}
	} else {
		if name != "ffmpeg" {
			t.Errorf("binaryName() = %s, want ffmpeg", name)
		}
	}
}

func notOnPath(string) (string, error) {
	return "", errors.New("not found")
}

func TestLocator_Resolve(t *testing.T) {
	t.Run("prefers PATH", func(t *testing.T) {
		l := NewLocator("", t.TempDir())
		l.lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }

		got, err := l.Resolve()
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got != "/usr/bin/"+binaryName() {
			t.Errorf("Resolve() = %s, want PATH hit", got)
		}
	})

	t.Run("falls back to bundled binary", func(t *testing.T) {
		dir := t.TempDir()
		bundled := filepath.Join(dir, binaryName())
		if err := os.WriteFile(bundled, []byte("bin"), 0755); err != nil {
			t.Fatal(err)
		}
		l := NewLocator("", dir)
		l.lookPath = notOnPath

		got, err := l.Resolve()
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got != bundled {
			t.Errorf("Resolve() = %s, want %s", got, bundled)
		}
	})

	t.Run("names both locations when missing", func(t *testing.T) {
		dir := t.TempDir()
		l := NewLocator("", dir)
		l.lookPath = notOnPath

		_, err := l.Resolve()
		if !errors.Is(err, domain.ErrEncoderNotFound) {
			t.Fatalf("Resolve() error = %v, want ErrEncoderNotFound", err)
		}
		if !strings.Contains(err.Error(), "PATH") || !strings.Contains(err.Error(), l.BundledPath()) {
			t.Errorf("error %q should name PATH and %s", err.Error(), l.BundledPath())
		}
	})

	t.Run("override must exist", func(t *testing.T) {
		l := NewLocator(filepath.Join(t.TempDir(), "missing"), "")

		if _, err := l.Resolve(); !errors.Is(err, domain.ErrEncoderNotFound) {
			t.Errorf("Resolve() error = %v, want ErrEncoderNotFound", err)
		}
	})
}
