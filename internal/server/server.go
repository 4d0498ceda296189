// Package server shares one simulation between many SSH viewers. A single
// ticker goroutine advances the world; each session renders in its own
// goroutine when signalled.
package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"emoji-life/internal/config"
	"emoji-life/internal/game"
	"emoji-life/internal/render"
)

// ErrServerFull is returned by AddSession when MaxSessions viewers are
// already connected.
var ErrServerFull = eris.New("server full")

// Server owns the shared simulation and the connected sessions.
type Server struct {
	mu          sync.Mutex
	ctl         game.Controller
	sessions    []*Session
	maxSessions int
	theme       render.Theme
	retime      chan time.Duration
	logger      zerolog.Logger
}

// New creates a Server around sim. New viewers start with cfg.Theme.
func New(sim *game.Sim, cfg config.Config, logger zerolog.Logger) (*Server, error) {
	theme, ok := render.ThemeByName(cfg.Theme)
	if !ok {
		return nil, eris.Errorf("unknown theme %q", cfg.Theme)
	}
	return &Server{
		ctl:         game.Controller{Sim: sim, Interval: cfg.Tick()},
		maxSessions: cfg.MaxSessions,
		theme:       theme,
		retime:      make(chan time.Duration, 1),
		logger:      logger.With().Str("component", "server").Logger(),
	}, nil
}

// Run advances the simulation every tick until ctx ends.
func (s *Server) Run(ctx context.Context) {
	s.mu.Lock()
	interval := s.ctl.Interval
	s.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	s.logger.Info().Dur("interval", interval).Msg("simulation started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("simulation stopped")
			return
		case d := <-s.retime:
			ticker.Reset(d)
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Server) tick() {
	s.mu.Lock()
	if !s.ctl.Paused {
		s.ctl.Sim.Step()
	}
	s.mu.Unlock()

	// Outside the lock so a slow viewer cannot stall the next tick.
	s.signalRender()
}

// AddSession registers sess. The caller must not hold s.mu.
func (s *Server) AddSession(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		return eris.Wrapf(ErrServerFull, "%d viewers connected", len(s.sessions))
	}
	s.sessions = append(s.sessions, sess)
	s.broadcastLocked(fmt.Sprintf("%s joined", sess.Name))
	sess.logger.Info().Int("viewers", len(s.sessions)).Msg("session added")
	return nil
}

// RemoveSession deregisters sess. Removing an unknown session does nothing.
func (s *Server) RemoveSession(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, other := range s.sessions {
		if other == sess {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			s.broadcastLocked(fmt.Sprintf("%s left", sess.Name))
			sess.logger.Info().Int("viewers", len(s.sessions)).Msg("session removed")
			return
		}
	}
}

// Sessions returns how many viewers are connected.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// signalRender asks every session to redraw without blocking.
func (s *Server) signalRender() {
	s.mu.Lock()
	sessions := append([]*Session(nil), s.sessions...)
	s.mu.Unlock()
	for _, sess := range sessions {
		sess.signal()
	}
}

// broadcastLocked appends msg to every session's log. Caller must hold s.mu.
func (s *Server) broadcastLocked(msg string) {
	for _, sess := range s.sessions {
		sess.AddMessage(msg)
	}
}

// processActionLocked applies a shared action from sess and tells everyone
// what happened. Caller must hold s.mu.
func (s *Server) processActionLocked(sess *Session, a game.Action) {
	before := s.ctl.Interval
	msg := s.ctl.Apply(a)
	if msg != "" {
		s.broadcastLocked(fmt.Sprintf("%s: %s", sess.Name, msg))
	}
	if s.ctl.Interval != before {
		s.sendInterval(s.ctl.Interval)
	}
	sess.logger.Debug().Uint8("action", uint8(a)).Str("result", msg).Msg("action")
}

// sendInterval hands d to Run, replacing any interval it has not picked up.
func (s *Server) sendInterval(d time.Duration) {
	for {
		select {
		case s.retime <- d:
			return
		default:
		}
		select {
		case <-s.retime:
		default:
		}
	}
}

// renderSessionLocked draws the shared world from sess's point of view.
// Caller must hold s.mu.
func (s *Server) renderSessionLocked(sess *Session) {
	st := s.ctl.Sim.Stats()
	sess.Renderer.DrawFrame(s.ctl.Sim.World())
	sess.Renderer.DrawHUD(render.Status{
		Generation: st.Generation,
		Population: st.Population,
		Peak:       st.Peak,
		Interval:   s.ctl.Interval,
		Paused:     s.ctl.Paused,
		Viewers:    len(s.sessions),
		Messages:   sess.Messages,
	})
}
