package domain

import (
	"path/filepath"
	"testing"
)

func TestNewConversionJob(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		outputDir  string
		wantOutput string
	}{
		{
			name:       "lowercase extension",
			source:     filepath.Join("mov", "clip.mov"),
			outputDir:  "mp4",
			wantOutput: filepath.Join("mp4", "clip.mp4"),
		},
		{
			name:       "uppercase extension",
			source:     filepath.Join("mov", "A.MOV"),
			outputDir:  "mp4",
			wantOutput: filepath.Join("mp4", "A.mp4"),
		},
		{
			name:       "dots in stem are kept",
			source:     filepath.Join("in", "holiday.2024.mov"),
			outputDir:  filepath.Join("out", "videos"),
			wantOutput: filepath.Join("out", "videos", "holiday.2024.mp4"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := NewConversionJob(tt.source, tt.outputDir, TargetExt)
			if job.SourcePath != tt.source {
				t.Errorf("SourcePath = %s, want %s", job.SourcePath, tt.source)
			}
			if job.OutputPath != tt.wantOutput {
				t.Errorf("OutputPath = %s, want %s", job.OutputPath, tt.wantOutput)
			}
		})
	}
}

func TestConversionJob_DisplayName(t *testing.T) {
	job := ConversionJob{SourcePath: filepath.Join("mov", "clip.mov")}
	if got := job.DisplayName(); got != "clip.mov" {
		t.Errorf("DisplayName() = %s, want clip.mov", got)
	}

	root := ConversionJob{SourcePath: string(filepath.Separator)}
	if got := root.DisplayName(); got != root.SourcePath {
		t.Errorf("DisplayName() = %s, want fallback to %s", got, root.SourcePath)
	}
}

func TestHasExt(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.mov", true},
		{"A.MOV", true},
		{"b.MoV", true},
		{"c.mp4", false},
		{"mov", false},
		{"notes.mov.txt", false},
	}

	for _, tt := range tests {
		if got := HasExt(tt.path, SourceExt); got != tt.want {
			t.Errorf("HasExt(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
