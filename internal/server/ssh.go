package server

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"

	internalssh "emoji-life/internal/ssh"
)

// defaultTerm is used when the client sends no TERM or one we do not trust.
const defaultTerm = "xterm-256color"

// maxNameBytes bounds a viewer's display name.
const maxNameBytes = 16

// allowedTerms lists the terminal types accepted from clients. TERM selects
// a terminfo entry, so it is never taken from the client unchecked.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"xterm-color":           true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

// termMu serialises the TERM environment change around screen creation.
var termMu sync.Mutex

// sanitizeName drops control characters from an SSH user name and caps it
// at maxNameBytes without splitting a rune.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) || r == utf8.RuneError {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sessionTerm(environ []string) string {
	for _, env := range environ {
		if term, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[term] {
			return term
		}
	}
	return defaultTerm
}

// NewSSHServer returns an SSH server on addr whose sessions view s.
func (s *Server) NewSSHServer(addr string, signer gossh.Signer) *gossh.Server {
	return &gossh.Server{
		Addr:        addr,
		Handler:     s.HandleSSH,
		PtyCallback: func(gossh.Context, gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}
}

// HandleSSH serves one SSH connection. It blocks for the lifetime of the
// session.
func (s *Server) HandleSSH(conn gossh.Session) {
	pty, winCh, ok := conn.Pty()
	if !ok {
		fmt.Fprintln(conn, "emoji life needs a terminal. Connect with: ssh -t")
		return
	}

	tty := internalssh.NewSessionTty(conn, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", sessionTerm(conn.Environ()))
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		s.logger.Warn().Err(err).Str("user", conn.User()).Msg("terminal setup failed")
		fmt.Fprintf(conn, "terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		s.logger.Warn().Err(err).Str("user", conn.User()).Msg("screen init failed")
		fmt.Fprintf(conn, "screen init failed: %v\n", err)
		return
	}
	defer screen.Fini()

	sess := NewSession(sanitizeName(conn.User()), screen, s.theme, s.logger)
	if err := s.AddSession(sess); err != nil {
		fmt.Fprintf(conn, "%v, try again later\n", err)
		return
	}
	defer s.RemoveSession(sess)

	s.RunLoop(conn.Context(), sess)
}
