// Package sshserver provides the SSH front end for the ansiview gallery.
// It wraps gliderlabs/ssh (which itself wraps golang.org/x/crypto/ssh)
// and keeps optional legacy algorithm support for the retro terminal
// clients (SyncTERM, NetRunner) that ANSI art collectors actually use.
package sshserver

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"log"
	"net"
	"os"

	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

// Config holds SSH server configuration.
type Config struct {
	HostKeyPath         string
	Host                string
	Port                int
	LegacySSHAlgorithms bool
	SessionHandler      func(ssh.Session)
	Version             string // SSH banner version (default: "ansiview")
}

// Server wraps a gliderlabs/ssh server.
type Server struct {
	inner    *ssh.Server
	listener net.Listener
}

// NewServer creates and configures a new SSH server. The host key is
// generated on first run if the file does not exist.
func NewServer(cfg Config) (*Server, error) {
	signer, err := loadOrCreateHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	version := cfg.Version
	if version == "" {
		version = "ansiview"
	}

	srv := &ssh.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:     cfg.SessionHandler,
		HostSigners: []ssh.Signer{signer},
		Version:     version,
		ConnectionFailedCallback: func(conn net.Conn, err error) {
			log.Printf("WARN: SSH connection failed from %s: %v", conn.RemoteAddr(), err)
		},
	}

	// Algorithm suites via ServerConfigCallback. Legacy mode includes the
	// older key exchanges and ciphers retro BBS clients still speak.
	legacy := cfg.LegacySSHAlgorithms
	srv.ServerConfigCallback = func(ctx ssh.Context) *gossh.ServerConfig {
		sc := &gossh.ServerConfig{}
		if legacy {
			log.Printf("DEBUG: SSH legacy algorithms enabled for retro client compatibility")
			sc.Config.KeyExchanges = []string{
				"curve25519-sha256",
				"curve25519-sha256@libssh.org",
				"ecdh-sha2-nistp256",
				"ecdh-sha2-nistp384",
				"ecdh-sha2-nistp521",
				"diffie-hellman-group14-sha256",
				"diffie-hellman-group14-sha1",
				"diffie-hellman-group1-sha1",
			}
			sc.Config.Ciphers = []string{
				"chacha20-poly1305@openssh.com",
				"aes128-gcm@openssh.com",
				"aes256-gcm@openssh.com",
				"aes128-ctr",
				"aes192-ctr",
				"aes256-ctr",
				"aes128-cbc",
				"3des-cbc",
			}
			sc.Config.MACs = []string{
				"hmac-sha2-256-etm@openssh.com",
				"hmac-sha2-512-etm@openssh.com",
				"hmac-sha2-256",
				"hmac-sha2-512",
				"hmac-sha1",
			}
		}
		return sc
	}

	return &Server{inner: srv}, nil
}

// loadOrCreateHostKey reads the host key at path, generating and
// persisting a new ed25519 key when the file is absent.
func loadOrCreateHostKey(path string) (ssh.Signer, error) {
	keyBytes, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("INFO: No host key at %s, generating ed25519 key", path)
		return generateHostKey(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read host key %s: %w", path, err)
	}
	signer, err := gossh.ParsePrivateKey(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("parse host key: %w", err)
	}
	return signer, nil
}

func generateHostKey(path string) (ssh.Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	pemBlock, err := gossh.MarshalPrivateKey(priv, "")
	if err != nil {
		return nil, fmt.Errorf("marshal host key: %w", err)
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
		return nil, fmt.Errorf("write host key %s: %w", path, err)
	}
	signer, err := gossh.NewSignerFromKey(priv)
	if err != nil {
		return nil, fmt.Errorf("signer from generated key: %w", err)
	}
	return signer, nil
}

// ListenAndServe binds to the configured address and serves SSH
// connections. It blocks until the server is closed.
func (s *Server) ListenAndServe() error {
	log.Printf("INFO: SSH gallery listening on %s", s.inner.Addr)
	return s.inner.ListenAndServe()
}

// Serve starts serving on an existing listener. Blocks until closed.
func (s *Server) Serve(l net.Listener) error {
	s.listener = l
	return s.inner.Serve(l)
}

// Close shuts down the server and all active connections.
func (s *Server) Close() error {
	return s.inner.Close()
}
