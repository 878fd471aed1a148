// Package viewer drives the read/patch/redraw loop over the SoftICE MDA
// named pipe.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/unix"

	"github.com/retroview/mdaview/internal/codepage"
	"github.com/retroview/mdaview/internal/dump"
	"github.com/retroview/mdaview/internal/logging"
)

const (
	// SoftICE pushes whole frames; one read per redraw cycle.
	readChunk = 48 * 1024

	// Bounded poll wait in milliseconds, ~12 redraws per second.
	pollTimeoutMs = 1000 / 12

	cursorHome = "\x1b[0;0H"
	attrReset  = "\x1b[0m"
)

// Viewer decodes frames from the pipe, fixes dump-line tails, and repaints
// the terminal in place.
type Viewer struct {
	table *codepage.Table
	out   io.Writer
	ansi  bool
}

// New returns a Viewer writing to out. When ansi is false (stdout is not a
// terminal) the cursor-home and attribute-reset sequences are suppressed
// and frames are written bare.
func New(table *codepage.Table, out io.Writer, ansi bool) *Viewer {
	return &Viewer{table: table, out: out, ansi: ansi}
}

// Run opens the pipe non-blocking and repaints frames until ctx is
// cancelled. Cancellation is a clean shutdown: the in-flight cycle
// completes, terminal attributes are reset, and Run returns nil.
func (v *Viewer) Run(ctx context.Context, pipePath string) error {
	fd, err := unix.Open(pipePath, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", pipePath, err)
	}
	defer unix.Close(fd)
	logging.Debug("reading frames from %s", pipePath)

	buf := make([]byte, readChunk)
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}

	for {
		select {
		case <-ctx.Done():
			v.reset()
			return nil
		default:
		}

		fds[0].Revents = 0
		n, err := unix.Poll(fds, pollTimeoutMs)
		if err != nil {
			// Poll is interrupted by the very signal that cancels ctx;
			// loop around and let the ctx check handle it.
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return fmt.Errorf("poll %s: %w", pipePath, err)
		}
		if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
			// Timeout, or POLLHUP with the writer gone: idle cycle.
			continue
		}

		nr, err := unix.Read(fd, buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				continue
			}
			return fmt.Errorf("read %s: %w", pipePath, err)
		}
		if nr == 0 {
			continue
		}

		if err := v.Redraw(buf[:nr]); err != nil {
			return err
		}
	}
}

// Redraw decodes one raw frame, patches its dump lines, and writes it with
// a cursor-home prefix so it overwrites the previous frame in place. No
// trailing newline is added.
func (v *Viewer) Redraw(frame []byte) error {
	screen, err := v.table.Decode(frame)
	if err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}
	screen = dump.FixScreen(v.table, screen)

	if v.ansi {
		screen = cursorHome + screen
	}
	if _, err := io.WriteString(v.out, screen); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (v *Viewer) reset() {
	if v.ansi {
		fmt.Fprintln(v.out, attrReset)
	}
}
