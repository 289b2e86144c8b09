package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// sessionTty implements tcell.Tty on top of an SSH session, so each client
// gets its own tcell.Screen.
type sessionTty struct {
	session gossh.Session
	mu      sync.Mutex
	window  gossh.Window
	winCh   <-chan gossh.Window
	onSize  func()
}

func newSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *sessionTty {
	return &sessionTty{session: s, window: pty.Window, winCh: winCh}
}

func (t *sessionTty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *sessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }
func (t *sessionTty) Close() error                { return t.session.Close() }

// The channel is opened and flushed by the SSH server.
func (t *sessionTty) Start() error { return nil }
func (t *sessionTty) Stop() error  { return nil }
func (t *sessionTty) Drain() error { return nil }

func (t *sessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb for window changes and follows the session's
// window channel until it closes.
func (t *sessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onSize = cb
	t.mu.Unlock()

	go func() {
		for win := range t.winCh {
			t.mu.Lock()
			t.window = win
			cb := t.onSize
			t.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}()
}
