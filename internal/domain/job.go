package domain

import (
	"path/filepath"
	"strings"
)

// Source and target container formats
const (
	SourceExt = "mov"
	TargetExt = "mp4"
)

// ConversionJob is one source-file-to-output-file conversion unit
type ConversionJob struct {
	SourcePath string
	OutputPath string
}

// NewConversionJob derives the output path by swapping the source's directory
// for outputDir and its extension for targetExt.
func NewConversionJob(sourcePath, outputDir, targetExt string) ConversionJob {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return ConversionJob{
		SourcePath: sourcePath,
		OutputPath: filepath.Join(outputDir, stem+"."+strings.TrimPrefix(targetExt, ".")),
	}
}

// OutputDir returns the directory the output file is written into
func (j ConversionJob) OutputDir() string {
	return filepath.Dir(j.OutputPath)
}

// DisplayName returns the source file name, or the full path when no usable
// name can be extracted.
func (j ConversionJob) DisplayName() string {
	name := filepath.Base(j.SourcePath)
	switch name {
	case "", ".", string(filepath.Separator):
		return j.SourcePath
	}
	return name
}

// HasExt reports whether path ends in ext, ignoring case
func HasExt(path, ext string) bool {
	got := strings.TrimPrefix(filepath.Ext(path), ".")
	return got != "" && strings.EqualFold(got, strings.TrimPrefix(ext, "."))
}
