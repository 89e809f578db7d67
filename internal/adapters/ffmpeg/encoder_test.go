package ffmpeg

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/devbush/mov2mp4/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	stderr []byte
	err    error

	name string
	args []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args []string) ([]byte, error) {
	f.name = name
	f.args = args
	return f.stderr, f.err
}

func testJob() domain.ConversionJob {
	return domain.NewConversionJob(filepath.Join("mov", "clip.mov"), "mp4", domain.TargetExt)
}

func TestHWAccelArgs(t *testing.T) {
	tests := []struct {
		platform domain.Platform
		want     []string
	}{
		{domain.PlatformWindows, []string{"-hwaccel", "d3d11va"}},
		{domain.PlatformMacOS, []string{"-hwaccel", "videotoolbox"}},
		{domain.PlatformLinux, []string{"-hwaccel", "auto"}},
		{domain.PlatformUnknown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.platform.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, HWAccelArgs(tt.platform))
		})
	}
}

func TestBuildArgs(t *testing.T) {
	job := testJob()

	got := BuildArgs(domain.PlatformMacOS, job)
	want := []string{
		"-hwaccel", "videotoolbox",
		"-i", job.SourcePath,
		"-c:v", "libx264", "-preset", "medium", "-crf", "23",
		"-c:a", "aac", "-b:a", "192k",
		"-threads", "0",
		job.OutputPath,
	}
	assert.Equal(t, want, got)

	unknown := BuildArgs(domain.PlatformUnknown, job)
	assert.Equal(t, "-i", unknown[0], "no acceleration flags on unknown platforms")
	assert.Equal(t, job.OutputPath, unknown[len(unknown)-1])
}

func TestEncoder_Convert(t *testing.T) {
	t.Run("zero exit is success and output dir is created", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		runner := &fakeRunner{}
		enc := NewEncoder("/usr/bin/ffmpeg", fs, runner, nil).WithPlatform(domain.PlatformLinux)

		outcome := enc.Convert(context.Background(), testJob())

		assert.Equal(t, domain.Success{}, outcome)
		assert.Equal(t, "/usr/bin/ffmpeg", runner.name)
		assert.Equal(t, BuildArgs(domain.PlatformLinux, testJob()), runner.args)

		info, err := fs.Stat("mp4")
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("non-zero exit carries stderr as diagnostic", func(t *testing.T) {
		runner := &fakeRunner{stderr: []byte("bad codec"), err: &exec.ExitError{}}
		enc := NewEncoder("ffmpeg", afero.NewMemMapFs(), runner, nil)

		outcome := enc.Convert(context.Background(), testJob())

		assert.Equal(t, domain.Failure{Diagnostic: "bad codec"}, outcome)
	})

	t.Run("invalid utf-8 in stderr is replaced", func(t *testing.T) {
		runner := &fakeRunner{stderr: []byte{0xff, 'o', 'k'}, err: &exec.ExitError{}}
		enc := NewEncoder("ffmpeg", afero.NewMemMapFs(), runner, nil)

		outcome := enc.Convert(context.Background(), testJob())

		assert.Equal(t, domain.Failure{Diagnostic: "�ok"}, outcome)
	})

	t.Run("start failure reports the error", func(t *testing.T) {
		runner := &fakeRunner{err: errors.New("exec: permission denied")}
		enc := NewEncoder("ffmpeg", afero.NewMemMapFs(), runner, nil)

		outcome := enc.Convert(context.Background(), testJob())

		assert.Equal(t, domain.Failure{Diagnostic: "exec: permission denied"}, outcome)
	})

	t.Run("output dir blocked by a file fails the job", func(t *testing.T) {
		// MemMapFs.MkdirAll accepts a file in the way, so use the real filesystem
		dir := t.TempDir()
		fs := afero.NewOsFs()
		blocked := filepath.Join(dir, "mp4")
		require.NoError(t, afero.WriteFile(fs, blocked, []byte("not a dir"), 0644))
		runner := &fakeRunner{}
		enc := NewEncoder("ffmpeg", fs, runner, nil)

		job := domain.NewConversionJob(filepath.Join(dir, "mov", "clip.mov"), blocked, domain.TargetExt)
		outcome := enc.Convert(context.Background(), job)

		failure, ok := outcome.(domain.Failure)
		require.True(t, ok, "want Failure, got %T", outcome)
		assert.Contains(t, failure.Diagnostic, domain.ErrOutputDir.Error())
		assert.Empty(t, runner.name, "ffmpeg must not run")
	})
}

func TestExecRunner_CapturesStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	stderr, err := ExecRunner{}.Run(context.Background(), "sh", []string{"-c", "echo out; echo 'bad codec' >&2; exit 3"})

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
	assert.Equal(t, "bad codec\n", string(stderr))
}
