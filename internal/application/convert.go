package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/devbush/mov2mp4/internal/domain"
	"github.com/devbush/mov2mp4/internal/ports"
	"github.com/spf13/afero"
)

// ConvertOptions configures a batch run
type ConvertOptions struct {
	DeleteSources bool

	// ConfirmDeletion, when set, is asked once jobs have been found and its
	// answer replaces DeleteSources. It is not called for an empty batch.
	ConfirmDeletion func() (bool, error)
}

// Marks prefix the per-job result lines
type Marks struct {
	Success string
	Failure string
	Warning string
}

// PlainMarks are used when no styled marks are supplied
var PlainMarks = Marks{Success: "✓", Failure: "✗", Warning: "!"}

// ConvertService runs a batch: discover jobs, then encode them one at a time
// while the progress display keeps ticking.
type ConvertService struct {
	source   ports.JobSource
	encoder  ports.Encoder
	progress ports.ProgressReporter
	fs       afero.Fs
	out      io.Writer
	marks    Marks
	logger   *slog.Logger
}

// NewConvertService creates a new batch orchestrator.
// fs is used for source deletion; out receives the found line and summary.
func NewConvertService(
	source ports.JobSource,
	encoder ports.Encoder,
	progress ports.ProgressReporter,
	fs afero.Fs,
	out io.Writer,
	logger *slog.Logger,
) *ConvertService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ConvertService{
		source:   source,
		encoder:  encoder,
		progress: progress,
		fs:       fs,
		out:      out,
		marks:    PlainMarks,
		logger:   logger,
	}
}

// WithMarks replaces the result line prefixes
func (s *ConvertService) WithMarks(m Marks) *ConvertService {
	s.marks = m
	return s
}

// Run discovers and converts every job. The returned error is non-nil only
// when discovery or the deletion choice fails, before any job runs;
// per-job failures are counted in the summary.
func (s *ConvertService) Run(ctx context.Context, opts ConvertOptions) (domain.BatchSummary, error) {
	jobs, err := s.source.Discover()
	if err != nil {
		return domain.BatchSummary{}, err
	}

	fmt.Fprintf(s.out, "Found %d %s files to process\n", len(jobs), strings.ToUpper(domain.SourceExt))
	s.logger.Info("discovered jobs", "count", len(jobs))

	if len(jobs) == 0 {
		return domain.BatchSummary{}, nil
	}

	if opts.ConfirmDeletion != nil {
		del, err := opts.ConfirmDeletion()
		if err != nil {
			return domain.BatchSummary{}, fmt.Errorf("failed to read deletion choice: %w", err)
		}
		opts.DeleteSources = del
	}

	summary := s.convertAll(ctx, jobs, opts)

	s.progress.Finish("Conversion complete")
	printSummary(s.out, summary)
	s.logger.Info("batch finished", "total", summary.Total, "succeeded", summary.Succeeded, "failed", summary.Failed)

	return summary, nil
}

func (s *ConvertService) convertAll(ctx context.Context, jobs []domain.ConversionJob, opts ConvertOptions) domain.BatchSummary {
	summary := domain.BatchSummary{Total: len(jobs)}
	s.progress.Begin(len(jobs))

	for _, job := range jobs {
		name := job.DisplayName()

		s.progress.SetMessage("Converting: " + name)
		s.progress.StartTicking()

		s.logger.Debug("converting", "source", job.SourcePath, "output", job.OutputPath)
		outcome := s.encoder.Convert(ctx, job)

		// No tick may render this job's message once it has settled
		s.progress.StopTicking()

		summary.Record(outcome)
		switch o := outcome.(type) {
		case domain.Success:
			if opts.DeleteSources {
				s.deleteSource(job, name)
			}
			s.progress.Println(fmt.Sprintf("%s Successfully converted: %s", s.marks.Success, name))
			s.logger.Info("converted", "source", job.SourcePath, "output", job.OutputPath)
		case domain.Failure:
			s.progress.Println(fmt.Sprintf("%s Failed to convert %s: %s", s.marks.Failure, name, o.Diagnostic))
			s.logger.Warn("conversion failed", "source", job.SourcePath, "diagnostic", o.Diagnostic)
		default:
			s.progress.Println(fmt.Sprintf("%s Failed to convert %s: encoder returned no outcome", s.marks.Failure, name))
		}

		s.progress.Advance()
	}

	return summary
}

// deleteSource removes a converted source; failure is reported, not fatal
func (s *ConvertService) deleteSource(job domain.ConversionJob, name string) {
	if err := s.fs.Remove(job.SourcePath); err != nil {
		s.progress.Println(fmt.Sprintf("%s Could not delete %s: %v", s.marks.Warning, name, err))
		s.logger.Warn("delete source failed", "source", job.SourcePath, "error", err)
		return
	}
	s.logger.Debug("deleted source", "source", job.SourcePath)
}

func printSummary(w io.Writer, s domain.BatchSummary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "%d Total files processed\n", s.Total)
	fmt.Fprintf(w, "%d Successfully converted\n", s.Succeeded)
	fmt.Fprintf(w, "%d Failed conversions\n", s.Failed)
}
