package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Precondition errors, fatal before any job runs
	ErrEncoderNotFound = errors.New("ffmpeg not found")
	ErrDiscovery       = errors.New("cannot read input directory")

	// Per-job errors, converted into a Failure outcome
	ErrOutputDir = errors.New("cannot create output directory")

	// Installer errors
	ErrUnsupportedArchive = errors.New("unsupported archive format")
	ErrBinaryNotInArchive = errors.New("ffmpeg binary not found in archive")
)

// EncoderNotFoundError lists every location searched for the encoder binary
type EncoderNotFoundError struct {
	Binary   string
	Searched []string
}

func (e *EncoderNotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s binary not found. Please ensure it's either:", e.Binary)
	for i, loc := range e.Searched {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, loc)
	}
	return b.String()
}

func (e *EncoderNotFoundError) Unwrap() error {
	return ErrEncoderNotFound
}
