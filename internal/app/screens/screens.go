// Package screens renders the terminal screens: landing, login,
// registration, the news/ads tab pair and the profile. Each screen is a
// navigator.Screen; navigation decisions are returned as actions, never
// executed in place.
package screens

import (
	"bufio"
	"io"

	"github.com/ifpr-pinhais/campusconnect/internal/app/auth"
	"github.com/ifpr-pinhais/campusconnect/internal/app/feed"
	"github.com/ifpr-pinhais/campusconnect/internal/app/session"
	"github.com/ifpr-pinhais/campusconnect/internal/app/store"
	"github.com/ifpr-pinhais/campusconnect/internal/logging"
)

// Deps is the shared wiring every screen gets.
type Deps struct {
	Flow     *auth.Flow
	Session  *session.Session
	Accounts *store.Accounts
	Feed     *feed.Service
	In       *bufio.Reader
	Out      io.Writer
	Log      logging.Logger
}
