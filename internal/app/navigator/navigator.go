// Package navigator implements the screen router: a stack of named routes
// with navigate/replace/reset/back primitives, a nested tab pair inside
// the main route, and a session gate wrapped around protected routes at
// the point they are declared in the route table.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ifpr-pinhais/campusconnect/internal/logging"
	"github.com/ifpr-pinhais/campusconnect/internal/style"
)

// Route names the screens of the app. The set is fixed; navigating to an
// undeclared route is an error, never a silent fall-through.
type Route string

const (
	RouteLanding  Route = "Landing"
	RouteLogin    Route = "Login"
	RouteRegister Route = "Register"
	RouteProfile  Route = "Profile"
	RouteMainTabs Route = "MainTabs"
)

// Tab names the sibling feeds nested inside MainTabs. Switching tabs does
// not touch the root stack.
type Tab string

const (
	TabNews Tab = "News"
	TabAds  Tab = "Ads"
)

// ActionKind tells the run loop what to do after a screen finishes.
type ActionKind int

const (
	ActionStay ActionKind = iota
	ActionNavigate
	ActionReplace
	ActionReset
	ActionBack
	ActionSwitchTab
	ActionExit
)

// Action is a screen's navigation request.
type Action struct {
	Kind  ActionKind
	To    Route
	Stack []Route
	Index int
	Tab   Tab
}

func Stay() Action                { return Action{Kind: ActionStay} }
func Navigate(to Route) Action    { return Action{Kind: ActionNavigate, To: to} }
func Replace(to Route) Action     { return Action{Kind: ActionReplace, To: to} }
func Back() Action                { return Action{Kind: ActionBack} }
func SwitchTab(tab Tab) Action    { return Action{Kind: ActionSwitchTab, Tab: tab} }
func Exit() Action                { return Action{Kind: ActionExit} }
func Reset(index int, routes ...Route) Action {
	return Action{Kind: ActionReset, Stack: routes, Index: index}
}

// Frame is what the run loop hands a screen when rendering it.
type Frame struct {
	Route Route
	Tab   Tab
}

// Screen renders one route and returns the user's navigation choice.
// Render blocks on user input; it must honour ctx cancellation for any
// I/O it performs.
type Screen interface {
	Route() Route
	Render(ctx context.Context, frame Frame) (Action, error)
}

// SessionGate guards protected routes. Satisfied by session.Gate.
type SessionGate interface {
	Check(ctx context.Context) (bool, error)
}

type entry struct {
	screen  Screen
	guarded bool
}

// Navigator owns the route table and the navigation stack.
type Navigator struct {
	table map[Route]entry
	stack []Route
	tab   Tab
	gate  SessionGate
	log   logging.Logger
	out   io.Writer
}

// ErrUnknownRoute is returned when a navigation primitive names a route
// missing from the table.
var ErrUnknownRoute = errors.New("unknown route")

// New builds a navigator with an empty table and Landing as the initial
// stack. Screens are declared with Handle before Run.
func New(gate SessionGate, log logging.Logger, out io.Writer) *Navigator {
	return &Navigator{
		table: make(map[Route]entry),
		stack: []Route{RouteLanding},
		tab:   TabNews,
		gate:  gate,
		log:   log.With("component", "navigator"),
		out:   out,
	}
}

// Handle declares a screen in the route table. Guarded routes get the
// session gate wrapped around them here, centrally, not inside the screen:
// no screen can be reached unguarded through a route-name collision.
func (n *Navigator) Handle(screen Screen, guarded bool) {
	n.table[screen.Route()] = entry{screen: screen, guarded: guarded}
}

// Current returns the route on top of the stack.
func (n *Navigator) Current() Route {
	return n.stack[len(n.stack)-1]
}

// CurrentTab returns the active tab inside MainTabs.
func (n *Navigator) CurrentTab() Tab {
	return n.tab
}

// Depth returns the stack depth.
func (n *Navigator) Depth() int {
	return len(n.stack)
}

// Navigate pushes a declared route onto the stack.
func (n *Navigator) Navigate(to Route) error {
	if _, ok := n.table[to]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRoute, to)
	}
	n.stack = append(n.stack, to)
	return nil
}

// Replace swaps the top frame, so the replaced screen is not reachable
// via back-navigation. Used after login and registration.
func (n *Navigator) Replace(to Route) error {
	if _, ok := n.table[to]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRoute, to)
	}
	n.stack[len(n.stack)-1] = to
	return nil
}

// ResetStack replaces the entire stack; routes[index] becomes the active
// route and everything after it is discarded. Used on logout and on
// session-gate rejection so no protected screen stays on the back-stack.
func (n *Navigator) ResetStack(index int, routes ...Route) error {
	if len(routes) == 0 || index < 0 || index >= len(routes) {
		return fmt.Errorf("reset: invalid index %d for %d routes", index, len(routes))
	}
	for _, r := range routes {
		if _, ok := n.table[r]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRoute, r)
		}
	}
	n.stack = append([]Route(nil), routes[:index+1]...)
	return nil
}

// Pop removes the top frame. Popping the last frame is a no-op: the root
// screen stays.
func (n *Navigator) Pop() {
	if len(n.stack) > 1 {
		n.stack = n.stack[:len(n.stack)-1]
	}
}

// SwitchTab changes the active tab. Only meaningful while MainTabs is on
// top; elsewhere it is ignored.
func (n *Navigator) SwitchTab(tab Tab) {
	if n.Current() == RouteMainTabs && (tab == TabNews || tab == TabAds) {
		n.tab = tab
	}
}

// Run drives the navigation loop until a screen asks to exit or ctx is
// done. Each iteration mounts the top route: guarded routes pass through
// the session gate first and are reset to Login when the check fails, so
// their content is never rendered without a session.
func (n *Navigator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		current := n.Current()
		e, ok := n.table[current]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRoute, current)
		}

		if e.guarded {
			// neutral pending state: no protected content yet
			fmt.Fprintln(n.out, style.Dim.Render("Verificando sessão..."))
			allowed, err := n.gate.Check(ctx)
			if err != nil {
				n.log.Error(ctx, "session check failed", "route", current, "error", err)
				fmt.Fprintln(n.out, style.ErrorPrefix, "Não foi possível verificar a sessão.")
				allowed = false
			}
			if !allowed {
				if err := n.ResetStack(0, RouteLogin); err != nil {
					return err
				}
				continue
			}
		}

		action, err := n.render(ctx, e.screen, Frame{Route: current, Tab: n.tab})
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			// catch-all boundary: report, drop in-flight state, remount clean
			n.log.Error(ctx, "screen failed", "route", current, "error", err)
			fmt.Fprintln(n.out, style.ErrorPrefix, "Algo deu errado. Tente novamente.")
			continue
		}

		done, err := n.apply(action)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// render mounts a screen, converting a rendering panic into an error so
// one broken screen cannot take the whole app down.
func (n *Navigator) render(ctx context.Context, s Screen, frame Frame) (action Action, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("screen %s panicked: %v", frame.Route, p)
		}
	}()
	return s.Render(ctx, frame)
}

func (n *Navigator) apply(action Action) (done bool, err error) {
	switch action.Kind {
	case ActionStay:
		return false, nil
	case ActionNavigate:
		return false, n.Navigate(action.To)
	case ActionReplace:
		return false, n.Replace(action.To)
	case ActionReset:
		return false, n.ResetStack(action.Index, action.Stack...)
	case ActionBack:
		n.Pop()
		return false, nil
	case ActionSwitchTab:
		n.SwitchTab(action.Tab)
		return false, nil
	case ActionExit:
		return true, nil
	default:
		return false, fmt.Errorf("unknown action kind %d", action.Kind)
	}
}
