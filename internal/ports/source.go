package ports

import "github.com/devbush/mov2mp4/internal/domain"

// JobSource discovers the ordered list of jobs for a batch
type JobSource interface {
	// Discover returns jobs in processing order, or domain.ErrDiscovery when
	// the input directory cannot be read.
	Discover() ([]domain.ConversionJob, error)
}
