// Package scan finds source videos in the input directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devbush/mov2mp4/internal/domain"
	"github.com/devbush/mov2mp4/internal/ports"
	"github.com/spf13/afero"
)

// Scanner lists regular files in a single directory whose extension matches
// the source format. Subdirectories are not descended into.
type Scanner struct {
	fs        afero.Fs
	inputDir  string
	outputDir string
	sourceExt string
	targetExt string
}

// NewScanner creates a scanner for MOV sources converted into MP4 outputs
func NewScanner(fs afero.Fs, inputDir, outputDir string) *Scanner {
	return &Scanner{
		fs:        fs,
		inputDir:  inputDir,
		outputDir: outputDir,
		sourceExt: domain.SourceExt,
		targetExt: domain.TargetExt,
	}
}

// Discover returns one job per matching file, ordered by file name.
// Entries that cannot be inspected are skipped.
func (s *Scanner) Discover() ([]domain.ConversionJob, error) {
	entries, err := afero.ReadDir(s.fs, s.inputDir)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", domain.ErrDiscovery, s.inputDir, err)
	}

	var jobs []domain.ConversionJob
	for _, entry := range entries {
		if !domain.HasExt(entry.Name(), s.sourceExt) {
			continue
		}

		path := filepath.Join(s.inputDir, entry.Name())
		if !s.isRegularFile(path, entry) {
			continue
		}

		jobs = append(jobs, domain.NewConversionJob(path, s.outputDir, s.targetExt))
	}

	return jobs, nil
}

// isRegularFile follows symlinks so a link to a video counts as a video
func (s *Scanner) isRegularFile(path string, info os.FileInfo) bool {
	if info.Mode()&os.ModeSymlink == 0 {
		return info.Mode().IsRegular()
	}
	target, err := s.fs.Stat(path)
	if err != nil {
		return false
	}
	return target.Mode().IsRegular()
}

var _ ports.JobSource = (*Scanner)(nil)
