package ffmpeg

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/devbush/mov2mp4/internal/domain"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"
)

// Installer extracts ffmpeg from a release archive into the bundled dir
type Installer struct {
	fs         afero.Fs
	bundledDir string
}

// NewInstaller creates an installer writing into bundledDir on fs
func NewInstaller(fs afero.Fs, bundledDir string) *Installer {
	return &Installer{fs: fs, bundledDir: bundledDir}
}

// Install extracts the ffmpeg binary from a .7z or .tar.xz archive and
// returns the installed path. Partial files are removed on failure.
func (i *Installer) Install(ctx context.Context, archivePath string, progress func(written, total int64)) (string, error) {
	src, err := i.fs.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat archive: %w", err)
	}

	var (
		entry io.ReadCloser
		size  int64
	)
	lower := strings.ToLower(archivePath)
	switch {
	case strings.HasSuffix(lower, ".7z"):
		entry, size, err = find7z(src, info.Size())
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		entry, size, err = findTarXz(src)
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedArchive, archivePath)
	}
	if err != nil {
		return "", err
	}
	defer entry.Close()

	if err := i.fs.MkdirAll(i.bundledDir, 0755); err != nil {
		return "", err
	}

	destPath := filepath.Join(i.bundledDir, binaryName())
	out, err := i.fs.Create(destPath)
	if err != nil {
		return "", err
	}

	// Track success to clean up partial extraction on failure
	success := false
	defer func() {
		out.Close()
		if !success {
			i.fs.Remove(destPath)
		}
	}()

	var written int64
	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := entry.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return "", writeErr
			}
			written += int64(n)
			if progress != nil {
				progress(written, size)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	// Make executable on Unix
	if runtime.GOOS != "windows" {
		if err := i.fs.Chmod(destPath, 0755); err != nil {
			return "", err
		}
	}

	success = true
	return destPath, nil
}

func isFFmpegEntry(name string) bool {
	return path.Base(strings.ReplaceAll(name, "\\", "/")) == binaryName()
}

func find7z(r io.ReaderAt, size int64) (io.ReadCloser, int64, error) {
	archive, err := sevenzip.NewReader(r, size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read 7z archive: %w", err)
	}
	for _, f := range archive.File {
		if f.FileInfo().IsDir() || !isFFmpegEntry(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		return rc, int64(f.UncompressedSize), nil
	}
	return nil, 0, domain.ErrBinaryNotInArchive
}

func findTarXz(r io.Reader) (io.ReadCloser, int64, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read xz stream: %w", err)
	}
	tr := tar.NewReader(xr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, 0, domain.ErrBinaryNotInArchive
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read tar entry: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && isFFmpegEntry(hdr.Name) {
			return io.NopCloser(tr), hdr.Size, nil
		}
	}
}
