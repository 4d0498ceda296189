package server

import (
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"emoji-life/internal/render"
)

// maxMessages caps each session's message log.
const maxMessages = 50

// Session is one connected viewer. Its renderer and camera are private to
// it; the world behind them is shared.
type Session struct {
	ID       uuid.UUID
	Name     string
	Screen   tcell.Screen
	Renderer *render.Renderer

	// Guarded by the server mutex.
	Messages []string

	// RenderCh receives a value whenever the session should redraw.
	RenderCh chan struct{}

	logger zerolog.Logger
}

// NewSession allocates a Session drawing onto screen. An empty name is
// replaced by one derived from the session id.
func NewSession(name string, screen tcell.Screen, theme render.Theme, logger zerolog.Logger) *Session {
	id := uuid.New()
	if name == "" {
		name = "viewer-" + id.String()[:4]
	}
	return &Session{
		ID:       id,
		Name:     name,
		Screen:   screen,
		Renderer: render.NewRenderer(screen, theme),
		RenderCh: make(chan struct{}, 1),
		logger:   logger.With().Str("session", id.String()).Str("name", name).Logger(),
	}
}

// AddMessage appends msg to the session's log.
func (s *Session) AddMessage(msg string) {
	s.Messages = append(s.Messages, msg)
	if len(s.Messages) > maxMessages {
		s.Messages = s.Messages[len(s.Messages)-maxMessages:]
	}
}

func (s *Session) signal() {
	select {
	case s.RenderCh <- struct{}{}:
	default:
	}
}
