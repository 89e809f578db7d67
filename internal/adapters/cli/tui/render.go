package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
)

// RenderMode selects how much of the bar is drawn
type RenderMode int

const (
	// ModeInteractive redraws the bar in place with ANSI cursor movement
	ModeInteractive RenderMode = iota
	// ModePlain prints lines only, plus a final ASCII bar
	ModePlain
	// ModeQuiet prints lines only
	ModeQuiet
)

const barWidth = 40

// renderProgressBar creates a text progress bar like [=====>    ]
// current=0, total=10, width=10 → [          ]
// current=5, total=10, width=10 → [=====>    ]
// current=10, total=10, width=10 → [==========]
// current=3, total=10, width=10 → [==>       ]
func renderProgressBar(current, total, width int) string {
	if total <= 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}

	var bar strings.Builder
	bar.WriteString("[")

	switch {
	case current >= total:
		bar.WriteString(strings.Repeat("=", width))
	case current <= 0:
		bar.WriteString(strings.Repeat(" ", width))
	default:
		ratio := float64(current) / float64(total)
		head := int(ratio*float64(width) + 0.5)
		if head < 1 {
			head = 1
		}

		// Below half the arrow sits on the rounded position, from half on
		// it sits just after it
		equals := head - 1
		if ratio >= 0.5 {
			equals = head
		}
		equals = max(0, min(equals, width-1))

		bar.WriteString(strings.Repeat("=", equals))
		bar.WriteString(">")
		bar.WriteString(strings.Repeat(" ", width-equals-1))
	}

	bar.WriteString("]")
	return bar.String()
}

// TerminalRenderer draws a two-line bar:
//
//	⣾ [00:01:05] ████████░░░░ 3/8
//	Current: Converting: clip.mov
type TerminalRenderer struct {
	out    io.Writer
	mode   RenderMode
	bar    progress.Model
	frames []string

	lines    int
	last     Frame
	hasFrame bool
}

// NewTerminalRenderer creates a renderer writing to out
func NewTerminalRenderer(out io.Writer, mode RenderMode) *TerminalRenderer {
	return &TerminalRenderer{
		out:    out,
		mode:   mode,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth), progress.WithoutPercentage()),
		frames: spinner.Dot.Frames,
	}
}

func (r *TerminalRenderer) Render(f Frame) {
	switch r.mode {
	case ModeInteractive:
		r.clear()
		r.draw(f)
	case ModePlain:
		if f.Done {
			fmt.Fprintf(r.out, "%s %d/%d %s\n", renderProgressBar(f.Position, f.Total, barWidth), f.Position, f.Total, f.Message)
		}
	}
}

func (r *TerminalRenderer) Println(text string) {
	if r.mode != ModeInteractive {
		fmt.Fprintln(r.out, text)
		return
	}

	r.clear()
	fmt.Fprintln(r.out, text)
	if r.hasFrame {
		r.draw(r.last)
	}
}

func (r *TerminalRenderer) clear() {
	if r.lines > 0 {
		fmt.Fprintf(r.out, "\033[%dA\033[J", r.lines)
		r.lines = 0
	}
}

func (r *TerminalRenderer) draw(f Frame) {
	icon := spinnerStyle.Render(r.frames[f.Spinner%len(r.frames)])
	if f.Done {
		icon = successStyle.Render("✓")
	}

	var pct float64
	if f.Total > 0 {
		pct = float64(f.Position) / float64(f.Total)
	}

	fmt.Fprintf(r.out, "%s [%s] %s %d/%d\n", icon, FormatElapsed(f.Elapsed), r.bar.ViewAs(pct), f.Position, f.Total)
	fmt.Fprintf(r.out, "Current: %s\n", f.Message)

	r.lines = 2
	r.last = f
	r.hasFrame = true
}
