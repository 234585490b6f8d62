package ui

import (
	"fmt"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Progress displays a simple progress indicator for counted operations.
//
// Updates redraw the current line in a TTY and are suppressed otherwise,
// so piped output only sees the final message.
type Progress struct {
	total   int
	current int
	message string
	mu      sync.Mutex
}

// NewProgress creates a new progress indicator.
func NewProgress(message string, total int) *Progress {
	return &Progress{
		message: message,
		total:   total,
	}
}

// Advance increments the progress by n.
func (p *Progress) Advance(n int) {
	p.mu.Lock()
	p.current += n
	current := p.current
	p.mu.Unlock()
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Printf("\r%s %s", p.message, Muted.Render(fmt.Sprintf("(%d/%d)", current, p.total)))
	}
}

// Done finishes the progress indicator, clearing the line.
func (p *Progress) Done() {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print("\r\033[K")
	}
}

// DoneWithMessage finishes the progress and prints a message.
func (p *Progress) DoneWithMessage(message string) {
	p.Done()
	fmt.Println(message)
}
