package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/vovakirdan/monster-math/internal/config"
	"github.com/vovakirdan/monster-math/internal/core"
	"github.com/vovakirdan/monster-math/internal/game"
)

// stubSession stands in for a connection; closeGames only uses it as a key.
type stubSession struct {
	ssh.Session
}

func TestCloseGamesOnDisconnect(t *testing.T) {
	srv := &SSHServer{logger: log.New(io.Discard)}
	sess := &stubSession{}
	m := NewModel(Options{
		Config:  config.DefaultConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3},
	})
	srv.games.Store(sess, m)

	ran := false
	srv.closeGames(func(ssh.Session) {
		ran = true
		// The client drops mid-level without quitting.
		m.Session().SelectLevel(1)
	})(sess)

	if !ran {
		t.Fatal("the wrapped handler did not run")
	}
	if _, ok := srv.games.Load(sess); ok {
		t.Error("the game should be forgotten after the connection ends")
	}
	s := m.Session()
	s.Step()
	if snap := s.Snapshot(); snap.State != game.StateCountdown || snap.Countdown != game.CountdownStart {
		t.Errorf("closed session kept ticking: %+v", snap)
	}
	if s.SelectLevel(2) {
		t.Error("a closed session must not start another level")
	}
}

func TestCloseGamesWithoutGame(t *testing.T) {
	srv := &SSHServer{logger: log.New(io.Discard)}
	ran := false
	srv.closeGames(func(ssh.Session) { ran = true })(&stubSession{})
	if !ran {
		t.Error("connections without a PTY still reach the handler")
	}
}
