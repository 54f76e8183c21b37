package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tardis/internal/client/api"
)

func (a *App) getStatus() string {
	s := ""
	if u, ok := a.session.User(); ok {
		s = u.Login + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// restoreSession picks up a token left by a previous run. A token the server
// rejects is discarded; an unreachable server keeps it for later.
func (a *App) restoreSession(ctx context.Context) {
	if err := a.session.Restore(); err != nil {
		a.logger.Error(ctx, "restore session failed", "error", err)
		return
	}

	token, ok := a.session.Token()
	if !ok {
		return
	}

	user, err := a.api.Me(ctx)
	switch {
	case err == nil:
		if err := a.session.Login(user, token); err != nil {
			a.logger.Error(ctx, "save session failed", "error", err)
			return
		}
		fmt.Fprintf(a.out, "Welcome back, %s!\n", user.Login)
	case errors.Is(err, api.ErrUnauthorized):
		a.session.Logout()
		fmt.Fprintln(a.out, "Your session has expired, please log in again.")
	default:
		a.logger.Warn(ctx, "could not verify saved session", "error", err)
	}
}

func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to the TARDIS CLI (type 'help' for commands)")

	a.checkOnline()
	a.restoreSession(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
