package navigator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifpr-pinhais/campusconnect/internal/logging"
)

// scriptScreen renders by popping the next action from its script and
// records every frame it was mounted with.
type scriptScreen struct {
	route  Route
	script []Action
	frames []Frame
}

func (s *scriptScreen) Route() Route { return s.route }

func (s *scriptScreen) Render(_ context.Context, frame Frame) (Action, error) {
	s.frames = append(s.frames, frame)
	if len(s.script) == 0 {
		return Exit(), nil
	}
	a := s.script[0]
	s.script = s.script[1:]
	return a, nil
}

type fixedGate struct {
	allowed bool
	err     error
	calls   int
}

func (g *fixedGate) Check(context.Context) (bool, error) {
	g.calls++
	return g.allowed, g.err
}

func newTestNavigator(t *testing.T, gate SessionGate) *Navigator {
	t.Helper()
	log := logging.NewZerologLogger(logging.Options{Output: io.Discard})
	return New(gate, log, &bytes.Buffer{})
}

func TestStackPrimitives(t *testing.T) {
	n := newTestNavigator(t, &fixedGate{})
	for _, r := range []Route{RouteLanding, RouteLogin, RouteRegister, RouteMainTabs} {
		n.Handle(&scriptScreen{route: r}, false)
	}

	require.Equal(t, RouteLanding, n.Current())

	require.NoError(t, n.Navigate(RouteLogin))
	require.Equal(t, RouteLogin, n.Current())
	require.Equal(t, 2, n.Depth())

	require.NoError(t, n.Replace(RouteRegister))
	require.Equal(t, RouteRegister, n.Current())
	require.Equal(t, 2, n.Depth(), "replace must not grow the stack")

	n.Pop()
	require.Equal(t, RouteLanding, n.Current())

	// back at the root stays at the root
	n.Pop()
	require.Equal(t, RouteLanding, n.Current())
	require.Equal(t, 1, n.Depth())
}

func TestNavigateUnknownRoute(t *testing.T) {
	n := newTestNavigator(t, &fixedGate{})
	n.Handle(&scriptScreen{route: RouteLanding}, false)

	err := n.Navigate(Route("Settings"))
	require.ErrorIs(t, err, ErrUnknownRoute)
	require.Equal(t, RouteLanding, n.Current(), "failed navigation must not change the stack")

	require.ErrorIs(t, n.Replace(Route("Settings")), ErrUnknownRoute)
	require.ErrorIs(t, n.ResetStack(0, Route("Settings")), ErrUnknownRoute)
}

func TestResetStack(t *testing.T) {
	n := newTestNavigator(t, &fixedGate{})
	n.Handle(&scriptScreen{route: RouteLanding}, false)
	n.Handle(&scriptScreen{route: RouteLogin}, false)
	n.Handle(&scriptScreen{route: RouteMainTabs}, false)

	require.NoError(t, n.Navigate(RouteLogin))
	require.NoError(t, n.Navigate(RouteMainTabs))
	require.Equal(t, 3, n.Depth())

	require.NoError(t, n.ResetStack(0, RouteLogin))
	require.Equal(t, RouteLogin, n.Current())
	require.Equal(t, 1, n.Depth(), "reset must discard the old stack")

	require.Error(t, n.ResetStack(1, RouteLogin), "index out of range")
	require.Error(t, n.ResetStack(0), "empty route list")
}

func TestSwitchTabOnlyInsideMainTabs(t *testing.T) {
	n := newTestNavigator(t, &fixedGate{})
	n.Handle(&scriptScreen{route: RouteLanding}, false)
	n.Handle(&scriptScreen{route: RouteMainTabs}, false)

	require.Equal(t, TabNews, n.CurrentTab())

	n.SwitchTab(TabAds)
	assert.Equal(t, TabNews, n.CurrentTab(), "tab switch outside MainTabs is ignored")

	require.NoError(t, n.Navigate(RouteMainTabs))
	n.SwitchTab(TabAds)
	assert.Equal(t, TabAds, n.CurrentTab())

	n.SwitchTab(Tab("Chat"))
	assert.Equal(t, TabAds, n.CurrentTab(), "unknown tab is ignored")
}

func TestRunFollowsScreenActions(t *testing.T) {
	gate := &fixedGate{allowed: true}
	n := newTestNavigator(t, gate)

	landing := &scriptScreen{route: RouteLanding, script: []Action{Navigate(RouteLogin)}}
	login := &scriptScreen{route: RouteLogin, script: []Action{Replace(RouteMainTabs)}}
	tabs := &scriptScreen{route: RouteMainTabs, script: []Action{SwitchTab(TabAds), Exit()}}
	n.Handle(landing, false)
	n.Handle(login, false)
	n.Handle(tabs, true)

	require.NoError(t, n.Run(context.Background()))

	require.Len(t, landing.frames, 1)
	require.Len(t, login.frames, 1)
	require.Len(t, tabs.frames, 2)
	assert.Equal(t, TabNews, tabs.frames[0].Tab)
	assert.Equal(t, TabAds, tabs.frames[1].Tab, "second mount sees the switched tab")
	assert.Equal(t, 2, gate.calls, "guarded route is checked on every mount")
}

func TestRunGuardedRouteWithoutSessionResetsToLogin(t *testing.T) {
	gate := &fixedGate{allowed: false}
	n := newTestNavigator(t, gate)

	login := &scriptScreen{route: RouteLogin, script: []Action{Exit()}}
	tabs := &scriptScreen{route: RouteMainTabs}
	n.Handle(&scriptScreen{route: RouteLanding, script: []Action{Navigate(RouteMainTabs)}}, false)
	n.Handle(login, false)
	n.Handle(tabs, true)

	require.NoError(t, n.Run(context.Background()))

	assert.Empty(t, tabs.frames, "guarded content must never render without a session")
	require.Len(t, login.frames, 1, "rejection lands on Login")
	assert.Equal(t, 1, n.Depth(), "protected route is gone from the back-stack")
}

func TestRunGateErrorDeniesAccess(t *testing.T) {
	gate := &fixedGate{allowed: true, err: errors.New("store offline")}
	n := newTestNavigator(t, gate)

	login := &scriptScreen{route: RouteLogin, script: []Action{Exit()}}
	tabs := &scriptScreen{route: RouteMainTabs}
	n.Handle(&scriptScreen{route: RouteLanding, script: []Action{Navigate(RouteMainTabs)}}, false)
	n.Handle(login, false)
	n.Handle(tabs, true)

	require.NoError(t, n.Run(context.Background()))
	assert.Empty(t, tabs.frames, "a gate failure must deny, not allow")
	require.Len(t, login.frames, 1)
}

// panicScreen panics on its first mount and exits on the second.
type panicScreen struct {
	route  Route
	mounts int
}

func (s *panicScreen) Route() Route { return s.route }

func (s *panicScreen) Render(context.Context, Frame) (Action, error) {
	s.mounts++
	if s.mounts == 1 {
		panic("template blew up")
	}
	return Exit(), nil
}

func TestRunRecoversFromScreenPanic(t *testing.T) {
	n := newTestNavigator(t, &fixedGate{})
	s := &panicScreen{route: RouteLanding}
	n.Handle(s, false)

	require.NoError(t, n.Run(context.Background()))
	assert.Equal(t, 2, s.mounts, "screen is remounted clean after a panic")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	n := newTestNavigator(t, &fixedGate{})
	n.Handle(&scriptScreen{route: RouteLanding, script: []Action{Stay(), Stay()}}, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, n.Run(ctx), context.Canceled)
}
