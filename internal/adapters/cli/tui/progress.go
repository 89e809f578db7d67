package tui

import (
	"sync"
	"time"

	"github.com/devbush/mov2mp4/internal/ports"
)

// DefaultTickInterval is how often the bar refreshes while a job runs
const DefaultTickInterval = 100 * time.Millisecond

// Frame is one snapshot of the progress state handed to a Renderer
type Frame struct {
	Position int
	Total    int
	Message  string
	Spinner  int
	Elapsed  time.Duration
	Tick     bool // render was triggered by the ticker, not a state change
	Done     bool
}

// Renderer draws frames and interleaved lines.
// ProgressBar serializes all calls, so implementations need no locking.
type Renderer interface {
	Render(f Frame)
	Println(text string)
}

// ProgressBar implements ports.ProgressReporter. It owns position, total and
// message; a background ticker only advances the spinner and re-renders.
type ProgressBar struct {
	mu       sync.Mutex
	renderer Renderer
	interval time.Duration
	now      func() time.Time

	total    int
	position int
	message  string
	spinner  int
	started  time.Time

	ticking bool
	stop    chan struct{}
	done    chan struct{}
}

// NewProgressBar creates a progress bar ticking at interval
func NewProgressBar(r Renderer, interval time.Duration) *ProgressBar {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &ProgressBar{
		renderer: r,
		interval: interval,
		now:      time.Now,
	}
}

func (p *ProgressBar) Begin(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total < 0 {
		total = 0
	}
	p.total = total
	p.position = 0
	p.started = p.now()
	p.render(false, false)
}

func (p *ProgressBar) SetMessage(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.message = text
	p.render(false, false)
}

// StartTicking launches the ticker goroutine. Calling it while already
// ticking is a no-op.
func (p *ProgressBar) StartTicking() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ticking {
		return
	}
	p.ticking = true
	stop := make(chan struct{})
	done := make(chan struct{})
	p.stop, p.done = stop, done

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				p.tick()
			}
		}
	}()
}

// StopTicking stops the ticker and blocks until its goroutine has exited.
// No tick renders once StopTicking has been entered.
func (p *ProgressBar) StopTicking() {
	p.mu.Lock()
	if !p.ticking {
		p.mu.Unlock()
		return
	}
	p.ticking = false
	stop, done := p.stop, p.done
	p.stop, p.done = nil, nil
	p.mu.Unlock()

	close(stop)
	<-done
}

func (p *ProgressBar) tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	// a tick that lost the race with StopTicking must not render
	if !p.ticking {
		return
	}
	p.spinner++
	p.render(true, false)
}

// Advance moves the bar forward by one, stopping at total
func (p *ProgressBar) Advance() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.position < p.total {
		p.position++
	}
	p.render(false, false)
}

// Finish stops any ticking and renders the final frame
func (p *ProgressBar) Finish(text string) {
	p.StopTicking()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.message = text
	p.render(false, true)
}

func (p *ProgressBar) Println(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.renderer.Println(text)
}

// Position returns the current position
func (p *ProgressBar) Position() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

// render must be called with p.mu held
func (p *ProgressBar) render(tick, done bool) {
	var elapsed time.Duration
	if !p.started.IsZero() {
		elapsed = p.now().Sub(p.started)
	}
	p.renderer.Render(Frame{
		Position: p.position,
		Total:    p.total,
		Message:  p.message,
		Spinner:  p.spinner,
		Elapsed:  elapsed,
		Tick:     tick,
		Done:     done,
	})
}

var _ ports.ProgressReporter = (*ProgressBar)(nil)
