package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/monster-math/internal/config"
	"github.com/vovakirdan/monster-math/internal/core"
	"github.com/vovakirdan/monster-math/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the host key file. Empty means ~/.monstermath/host_key,
	// generated on first start.
	HostKeyPath string

	// DBPath is the scores database shared by all players.
	DBPath string

	// IdleTimeout closes connections that send nothing for this long.
	IdleTimeout time.Duration

	// MaxPlayers caps concurrent games. Zero means no cap.
	MaxPlayers int

	// TickRate is the simulation rate of every game.
	TickRate int

	// Game is the monster configuration used for every game.
	Game config.MonsterConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.monstermath/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Game:        config.DefaultConfig(),
	}
}

// SSHServer serves one independent game per SSH connection. Remote players
// have no audio; the tone engine is never opened.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	logger  *log.Logger
	players atomic.Int32
	games   sync.Map // ssh.Session -> Model
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "monstermath-ssh",
	})

	hostKeyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		// Games still run; scores are simply not kept.
		logger.Warn("could not open scores database", "path", cfg.DBPath, "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Middlewares run last to first: the session log wraps the player cap,
	// then the terminal check, then game teardown, then the game.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.newGame),
			srv.closeGames,
			activeterm.Middleware(),
			srv.capPlayers,
			srv.logSessions,
		),
		// Answers are a few bytes each; do not let Nagle hold them back.
		ssh.WrapConn(func(_ ssh.Context, conn net.Conn) net.Conn {
			if tcp, ok := conn.(*net.TCPConn); ok {
				_ = tcp.SetNoDelay(true)
			}
			return conn
		}),
	)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, fmt.Errorf("ssh: create server: %w", err)
	}

	srv.server = server
	return srv, nil
}

func resolveHostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("ssh: home directory: %w", err)
		}
		path = filepath.Join(home, ".monstermath", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("ssh: host key directory: %w", err)
	}
	return path, nil
}

// newGame builds the model for one connection, sized to its PTY.
func (s *SSHServer) newGame(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	// Sound stays off: the tone engine would play on the server's device.
	model := NewModel(Options{
		Config: s.config.Game,
		Runtime: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.config.TickRate,
			Seed:     time.Now().UnixNano(),
		},
		Store:  s.store,
		Logger: s.logger.With("user", sess.User()),
	})

	s.games.Store(sess, model)

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// closeGames tears down the game of a connection once its program has
// exited, whether the player quit or the client just disconnected.
func (s *SSHServer) closeGames(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		defer func() {
			if m, ok := s.games.LoadAndDelete(sess); ok {
				m.(Model).Close()
			}
		}()
		next(sess)
	}
}

// capPlayers turns connections away once MaxPlayers games are running.
func (s *SSHServer) capPlayers(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		n := s.players.Add(1)
		defer s.players.Add(-1)

		if limit := s.config.MaxPlayers; limit > 0 && int(n) > limit {
			s.logger.Warn("server full", "user", sess.User(), "players", n-1)
			wish.Fatalln(sess, "Monster Math is full right now, try again in a minute.")
			return
		}
		next(sess)
	}
}

// logSessions records connect and disconnect with the time spent playing.
func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		remote := sess.RemoteAddr().String()
		s.logger.Info("player connected", "user", sess.User(), "remote", remote)
		next(sess)
		s.logger.Info("player left",
			"user", sess.User(),
			"remote", remote,
			"played", time.Since(start).Round(time.Second),
		)
	}
}

// Players reports how many games are currently running.
func (s *SSHServer) Players() int {
	return int(s.players.Load())
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "max_players", s.config.MaxPlayers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.closeStore()
		return fmt.Errorf("ssh: serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "players", s.Players())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops accepting connections, waits for running games up to the
// context deadline and closes the scores database.
func (s *SSHServer) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing scores database", "error", err)
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
