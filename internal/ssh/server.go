// Package ssh serves freshly generated dungeons to SSH clients. Every
// session gets its own dungeon in a scrollable terminal viewer.
//
// Connect with:
//
//	ssh -t -p 2222 localhost [seed] [WIDTHxHEIGHT]
package ssh

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"

	"bsp-dungeon/internal/generate"
	"bsp-dungeon/internal/render"
)

// MaxSize caps the dungeon edge a client may ask for.
const MaxSize = 2048

// allowedTerms lists the TERM values clients may select. Anything else falls
// back to xterm-256color so clients cannot point terminfo at arbitrary names.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

const defaultTerm = "xterm-256color"

// termMu protects os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

// Server hands each SSH session its own dungeon.
type Server struct {
	Addr        string
	HostKeyPath string

	// Config is copied for every session. A zero seed gives every session
	// its own clock seed.
	Config generate.Config
	Theme  render.Theme

	// MaxSessions bounds concurrent viewers; zero means 16.
	MaxSessions int

	Logger *slog.Logger

	mu    sync.Mutex
	srv   *gossh.Server
	slots chan struct{}
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func (s *Server) setup() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		return nil
	}
	signer, err := loadOrCreateHostKey(s.HostKeyPath, s.logger())
	if err != nil {
		return err
	}
	n := s.MaxSessions
	if n <= 0 {
		n = 16
	}
	s.slots = make(chan struct{}, n)
	s.srv = &gossh.Server{
		Addr:    s.Addr,
		Handler: s.handleSession,
		// Any client may request a PTY.
		PtyCallback: func(gossh.Context, gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}
	return nil
}

// ListenAndServe listens on s.Addr and serves until Close.
func (s *Server) ListenAndServe() error {
	if err := s.setup(); err != nil {
		return err
	}
	s.logger().Info("ssh server listening", "addr", s.Addr)
	return s.srv.ListenAndServe()
}

// Serve accepts sessions on l until Close.
func (s *Server) Serve(l net.Listener) error {
	if err := s.setup(); err != nil {
		return err
	}
	s.logger().Info("ssh server listening", "addr", l.Addr().String())
	return s.srv.Serve(l)
}

// Close stops the listener and drops every session.
func (s *Server) Close() error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Close()
}

func (s *Server) handleSession(sess gossh.Session) {
	logger := s.logger().With("user", sess.User(), "remote", sess.RemoteAddr().String())

	pty, winCh, hasPTY := sess.Pty()
	if !hasPTY {
		fmt.Fprintln(sess, "The dungeon viewer needs a PTY. Connect with: ssh -t -p <port> <host>")
		return
	}

	select {
	case s.slots <- struct{}{}:
		defer func() { <-s.slots }()
	default:
		fmt.Fprintln(sess, "Server busy, try again later.")
		logger.Warn("session refused, server full")
		return
	}

	cfg, err := sessionConfig(s.Config, sess.Command())
	if err != nil {
		fmt.Fprintf(sess, "%v\r\n", err)
		return
	}
	d, err := generate.Generate(cfg)
	if err != nil {
		fmt.Fprintf(sess, "%v\r\n", err)
		logger.Warn("generate failed", "error", err)
		return
	}

	term := sessionTerm(sess.Environ())
	tty := newSessionTty(sess, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(sess, "Terminal setup failed: %v\r\n", err)
		logger.Warn("terminal setup failed", "term", term, "error", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(sess, "Screen init failed: %v\r\n", err)
		return
	}

	// Unblock PollEvent when the client hangs up.
	done := make(chan struct{})
	go func() {
		select {
		case <-sess.Context().Done():
			screen.Fini()
		case <-done:
		}
	}()

	logger.Info("session started", "seed", d.Seed, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "term", term)
	v := render.NewViewer(screen, d.Grid)
	v.Theme = s.Theme
	v.SetMarkers(d.Markers)
	v.Status = fmt.Sprintf("seed %d", d.Seed)
	v.Run()
	close(done)
	screen.Fini()
	logger.Info("session ended", "seed", d.Seed)
}

// sessionTerm returns the client's TERM when it is allowed.
func sessionTerm(env []string) string {
	for _, e := range env {
		if t, ok := strings.CutPrefix(e, "TERM="); ok {
			if allowedTerms[t] {
				return t
			}
			break
		}
	}
	return defaultTerm
}

// sessionConfig applies the optional "[seed] [WIDTHxHEIGHT]" session
// command to base.
func sessionConfig(base generate.Config, args []string) (generate.Config, error) {
	cfg := base
	cfg.Rand = nil
	if len(args) > 2 {
		return cfg, errors.New("usage: [seed] [WIDTHxHEIGHT]")
	}
	if len(args) > 0 {
		seed, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("bad seed %q", args[0])
		}
		cfg.Seed = seed
	}
	if len(args) > 1 {
		w, h, ok := parseSize(args[1])
		if !ok {
			return cfg, fmt.Errorf("bad size %q, want WIDTHxHEIGHT", args[1])
		}
		cfg.Width, cfg.Height = w, h
	}
	if cfg.Width > MaxSize || cfg.Height > MaxSize {
		return cfg, fmt.Errorf("size %dx%d larger than %d", cfg.Width, cfg.Height, MaxSize)
	}
	return cfg, nil
}

func parseSize(s string) (int, int, bool) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, false
	}
	w, err1 := strconv.Atoi(ws)
	h, err2 := strconv.Atoi(hs)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
