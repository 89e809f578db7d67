package cli

import (
	"os"

	"github.com/devbush/mov2mp4/internal/adapters/cli/tui"
	"github.com/mattn/go-isatty"
)

const deletePrompt = "Delete original MOV files after successful conversion?"

type deletionInputs struct {
	flagSet     bool // --delete was given explicitly
	flagValue   bool
	skipPrompt  bool // --yes or --quiet
	interactive bool // stdin and stdout are terminals
	fallback    bool // defaults.delete_sources
}

// resolveDeletion decides whether sources are deleted after success.
// An explicit flag wins; otherwise a terminal user is asked, with the
// configured default preselected; otherwise the default applies.
func resolveDeletion(in deletionInputs, confirm func(question string, defaultYes bool) (bool, error)) (bool, error) {
	if in.flagSet {
		return in.flagValue, nil
	}
	if in.skipPrompt || !in.interactive || confirm == nil {
		return in.fallback, nil
	}
	return confirm(deletePrompt, in.fallback)
}

func renderMode(quiet, terminal bool) tui.RenderMode {
	switch {
	case quiet:
		return tui.ModeQuiet
	case terminal:
		return tui.ModeInteractive
	default:
		return tui.ModePlain
	}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
