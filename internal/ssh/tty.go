package ssh

import (
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty implements tcell.Tty over an SSH channel so every viewer gets
// its own tcell.Screen.
type SessionTty struct {
	ch      io.ReadWriteCloser
	resizes <-chan gossh.Window

	mu       sync.Mutex
	size     tcell.WindowSize
	onResize func()
	watching bool
}

// NewSessionTty wraps an SSH session. pty holds the initial window size;
// resizes delivers later window changes and is closed with the session.
func NewSessionTty(ch io.ReadWriteCloser, pty gossh.Pty, resizes <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		ch:      ch,
		resizes: resizes,
		size:    windowSize(pty.Window),
	}
}

func windowSize(w gossh.Window) tcell.WindowSize {
	return tcell.WindowSize{Width: w.Width, Height: w.Height}
}

// Read reads keyboard input from the client.
func (t *SessionTty) Read(b []byte) (int, error) { return t.ch.Read(b) }

// Write sends rendered output to the client.
func (t *SessionTty) Write(b []byte) (int, error) { return t.ch.Write(b) }

// Close closes the SSH channel.
func (t *SessionTty) Close() error { return t.ch.Close() }

// Start does nothing; the channel is open once the handler runs.
func (t *SessionTty) Start() error { return nil }

// Stop does nothing; the SSH handler owns the channel's lifetime.
func (t *SessionTty) Stop() error { return nil }

// Drain does nothing; writes are unbuffered.
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the last reported terminal size.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size, nil
}

// NotifyResize registers cb for window changes. The first call starts a
// goroutine that follows the resize channel until it closes.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	start := !t.watching && t.resizes != nil
	t.watching = true
	t.mu.Unlock()

	if start {
		go t.watch()
	}
}

func (t *SessionTty) watch() {
	for win := range t.resizes {
		t.mu.Lock()
		t.size = windowSize(win)
		cb := t.onResize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}
