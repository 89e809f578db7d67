package ports

import (
	"context"

	"github.com/devbush/mov2mp4/internal/domain"
)

// Encoder converts one job by driving an external encoder process.
// Failures are returned as a domain.Failure outcome, never as an error.
type Encoder interface {
	Convert(ctx context.Context, job domain.ConversionJob) domain.Outcome
}

// ProcessRunner runs an external program to completion.
// It returns the captured standard error and the exit error, if any.
type ProcessRunner interface {
	Run(ctx context.Context, name string, args []string) (stderr []byte, err error)
}
