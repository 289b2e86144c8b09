package ssh

import (
	"bytes"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	xssh "golang.org/x/crypto/ssh"

	"bsp-dungeon/internal/generate"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAllowedTerms(t *testing.T) {
	cases := []struct {
		name    string
		term    string
		allowed bool
	}{
		{"xterm-256color", "xterm-256color", true},
		{"tmux", "tmux", true},
		{"linux", "linux", true},
		{"vt100", "vt100", true},
		{"screen", "screen", true},
		{"rxvt-unicode-256color", "rxvt-unicode-256color", true},
		{"unknown term", "evil-term", false},
		{"path traversal", "../../../etc/passwd", false},
		{"empty string", "", false},
		{"xterm-kitty", "xterm-kitty", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := allowedTerms[tc.term]
			if got != tc.allowed {
				t.Errorf("allowedTerms[%q] = %v, want %v", tc.term, got, tc.allowed)
			}
		})
	}
}

func TestSessionTerm(t *testing.T) {
	cases := []struct {
		name   string
		env    []string
		expect string
	}{
		{"allowed", []string{"LANG=C", "TERM=tmux"}, "tmux"},
		{"not allowed", []string{"TERM=../x"}, defaultTerm},
		{"missing", []string{"LANG=C"}, defaultTerm},
		{"empty env", nil, defaultTerm},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sessionTerm(tc.env); got != tc.expect {
				t.Errorf("sessionTerm(%q) = %q, want %q", tc.env, got, tc.expect)
			}
		})
	}
}

func TestSessionConfig(t *testing.T) {
	base := generate.DefaultConfig(128, 96, 0)
	cases := []struct {
		name    string
		args    []string
		seed    int64
		w, h    int
		wantErr bool
	}{
		{"no args", nil, 0, 128, 96, false},
		{"seed", []string{"42"}, 42, 128, 96, false},
		{"seed and size", []string{"-7", "64x32"}, -7, 64, 32, false},
		{"bad seed", []string{"abc"}, 0, 0, 0, true},
		{"bad size", []string{"1", "64by32"}, 0, 0, 0, true},
		{"zero size", []string{"1", "0x32"}, 0, 0, 0, true},
		{"too large", []string{"1", "4096x16"}, 0, 0, 0, true},
		{"too many args", []string{"1", "2x2", "3"}, 0, 0, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := sessionConfig(base, tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.args)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Seed != tc.seed || cfg.Width != tc.w || cfg.Height != tc.h {
				t.Errorf("got seed=%d size=%dx%d, want seed=%d size=%dx%d",
					cfg.Seed, cfg.Width, cfg.Height, tc.seed, tc.w, tc.h)
			}
		})
	}
	if base.Seed != 0 {
		t.Error("base config modified")
	}
}

func TestHostKeyPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "host_key")
	first, err := loadOrCreateHostKey(path, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("key not saved: %v", err)
	}
	second, err := loadOrCreateHostKey(path, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.PublicKey().Marshal(), second.PublicKey().Marshal()) {
		t.Error("reloaded key differs from the saved one")
	}
}

func TestHostKeyReplacesGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")
	if err := os.WriteFile(path, []byte("not a key"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadOrCreateHostKey(path, quietLogger()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := xssh.ParsePrivateKey(data); err != nil {
		t.Errorf("replacement key unreadable: %v", err)
	}
}

func TestSessionWithoutPTY(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	srv := &Server{
		HostKeyPath: filepath.Join(t.TempDir(), "host_key"),
		Config:      generate.DefaultConfig(64, 64, 1),
		Logger:      quietLogger(),
	}
	go srv.Serve(l)
	defer srv.Close()

	client, err := xssh.Dial("tcp", l.Addr().String(), &xssh.ClientConfig{
		User:            "tester",
		HostKeyCallback: xssh.InsecureIgnoreHostKey(),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()
	sess, err := client.NewSession()
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()

	out, _ := sess.Output("7")
	if !strings.Contains(string(out), "needs a PTY") {
		t.Errorf("unexpected output %q", out)
	}
}
