package session

import (
	"context"
	"errors"

	"github.com/ifpr-pinhais/campusconnect/internal/app/auth"
	"github.com/ifpr-pinhais/campusconnect/internal/app/store"
	"github.com/ifpr-pinhais/campusconnect/internal/logging"
)

// Gate decides whether protected screens may render. It is a point-in-time
// check performed at guarded-route entry, not a subscription: a session
// change after the screen is up does not retroactively unmount it.
type Gate struct {
	accounts *store.Accounts
	dir      auth.Directory
	session  *Session
	log      logging.Logger
}

func NewGate(accounts *store.Accounts, dir auth.Directory, session *Session, log logging.Logger) *Gate {
	return &Gate{
		accounts: accounts,
		dir:      dir,
		session:  session,
		log:      log.With("component", "gate"),
	}
}

// Check reads the persisted session marker and resolves the user record
// behind it. It returns true when a protected screen may render. A marker
// whose record has vanished invalidates the session (marker cleared,
// false returned) rather than letting a ghost session through.
func (g *Gate) Check(ctx context.Context) (bool, error) {
	marker, err := g.accounts.Session(ctx)
	if err != nil {
		return false, err
	}
	if marker == "" {
		g.session.Clear()
		return false, nil
	}

	rec, err := g.dir.Lookup(ctx, marker)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			g.log.Warn(ctx, "session marker points at a missing account, forcing logout", "nationalId", marker)
			_ = g.accounts.ClearSession(ctx)
			g.session.Clear()
			return false, nil
		}
		return false, err
	}

	g.session.Set(rec)
	return true, nil
}
