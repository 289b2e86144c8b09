package ssh

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	gossh "github.com/gliderlabs/ssh"
	"github.com/mitchellh/go-homedir"
	xssh "golang.org/x/crypto/ssh"
)

// loadOrCreateHostKey loads a PEM private key from path, or generates an
// ed25519 key and saves it there when the file is missing or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	full, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("host key path: %w", err)
	}
	if data, err := os.ReadFile(full); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", full)
			return signer, nil
		}
		logger.Warn("unreadable host key, generating a new one", "path", full)
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("host key signer: %w", err)
	}
	block, err := xssh.MarshalPrivateKey(key, "bsp-dungeon server")
	if err != nil {
		return nil, fmt.Errorf("encode host key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o700); err != nil {
		logger.Warn("host key not saved", "path", full, "error", err)
		return signer, nil
	}
	if err := os.WriteFile(full, pem.EncodeToMemory(block), 0o600); err != nil {
		logger.Warn("host key not saved", "path", full, "error", err)
		return signer, nil
	}
	logger.Info("generated host key", "path", full)
	return signer, nil
}
