package server

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"emoji-life/internal/game"
	"emoji-life/internal/render"
)

// RunLoop is the per-session goroutine. It reads input and redraws when
// signalled, returning when the viewer quits, disconnects, or ctx ends.
func (s *Server) RunLoop(ctx context.Context, sess *Session) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 32)
	go game.PollEvents(ctx, sess.Screen, events)

	s.recenter(sess)
	sess.signal()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				sess.Screen.Sync()
				sess.Renderer.Resize()
				sess.signal()
			case *tcell.EventKey:
				if s.handleKey(sess, game.KeyToAction(ev)) {
					return
				}
			}
		case <-sess.RenderCh:
			s.mu.Lock()
			s.renderSessionLocked(sess)
			s.mu.Unlock()
		}
	}
}

// handleKey applies a and reports whether the viewer quit. View actions stay
// with the session; everything else changes the shared world.
func (s *Server) handleKey(sess *Session, a game.Action) bool {
	switch a {
	case game.ActionNone:
		return false
	case game.ActionQuit:
		return true
	case game.ActionTheme:
		sess.Renderer.SetTheme(render.NextTheme(sess.Renderer.Theme()))
		s.mu.Lock()
		sess.AddMessage("theme " + sess.Renderer.Theme().Name)
		s.mu.Unlock()
		sess.signal()
	case game.ActionPanN, game.ActionPanS, game.ActionPanE, game.ActionPanW:
		dx, dy := game.ActionDelta(a)
		sess.Renderer.Camera().Pan(dx, dy)
		sess.signal()
	case game.ActionRecenter:
		s.recenter(sess)
		sess.signal()
	default:
		s.mu.Lock()
		s.processActionLocked(sess, a)
		s.mu.Unlock()
		s.signalRender()
	}
	return false
}

func (s *Server) recenter(sess *Session) {
	cx, cy := s.ctl.Sim.Grid().Bounds().Center()
	sess.Renderer.CenterOn(cx, cy)
}
