//go:build !windows

// Package stderr captures output that C libraries (ALSA through the audio
// backend) write straight to file descriptor 2. Left alone it would draw
// over the terminal UI; captured lines go to the logger instead.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
)

// Capture is an active redirection of fd 2.
type Capture struct {
	orig  int
	read  *os.File
	write *os.File
	done  chan struct{}
	once  sync.Once
}

// Start redirects fd 2 into a pipe and logs every non-empty line at warn
// level. On error nothing is redirected and the program can go on.
func Start(logger zerolog.Logger) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, read: r, write: w, done: make(chan struct{})}
	log := logger.With().Str("component", "stderr").Logger()
	go func() {
		defer close(c.done)
		forward(r, log)
	}()
	return c, nil
}

func forward(r *os.File, log zerolog.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Warn().Msg(line)
		}
	}
}

// Stop restores fd 2 and waits for the captured lines to be logged. Safe
// to call on a nil Capture and more than once.
func (c *Capture) Stop() {
	if c == nil {
		return
	}
	c.once.Do(func() {
		_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
		_ = syscall.Close(c.orig)
		c.write.Close()
		<-c.done
		c.read.Close()
	})
}
