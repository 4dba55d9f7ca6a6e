package ssh

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bts "github.com/charmbracelet/wish/bubbletea"

	"github.com/ntpusu/lawtext/internal/app"
	"github.com/ntpusu/lawtext/internal/config"
)

type sessionAppKey struct{}

// NewHandler returns a Bubble Tea handler for SSH sessions.
func NewHandler(cfg config.Config) bts.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		log.Info("reader session", "user", sess.User(), "remote", sess.RemoteAddr())

		a := app.New(cfg)
		trackApp(sess, &a)

		opts := []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		}
		opts = append(opts, bts.MakeOptions(sess)...)

		return &a, opts
	}
}

func trackApp(sess ssh.Session, a *app.App) {
	sess.Context().SetValue(sessionAppKey{}, a)
}

// closeAppMiddleware closes the session's reader. The bubbletea middleware
// calls it only after the program has exited.
func closeAppMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			if a, ok := sess.Context().Value(sessionAppKey{}).(*app.App); ok {
				a.Close()
			}
			next(sess)
		}
	}
}
