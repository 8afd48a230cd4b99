// Package guard decides, for any navigation into a protected view,
// whether to render, redirect to login, or render optimistically under
// a verification overlay. The overlay state exists so users on slow
// networks are not kicked back to login while the identity fetch is
// merely in flight: "we don't know yet" is not "we know it's invalid".
package guard

import (
	"github.com/schoolctl/schoolctl/internal/identity"
	"github.com/schoolctl/schoolctl/internal/session"
)

// Decision is the outcome of evaluating a protected navigation.
type Decision int

const (
	// Redirect sends the user to the login entry point.
	Redirect Decision = iota
	// RenderVerifying renders the protected view from best-available
	// cached identity with a non-blocking verification overlay.
	RenderVerifying
	// Render shows the protected view normally.
	Render
)

// String returns a short label for the decision.
func (d Decision) String() string {
	switch d {
	case Redirect:
		return "redirect"
	case RenderVerifying:
		return "render_verifying"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// State are the inputs to the decision.
type State struct {
	TokenPresent   bool
	FetchSettled   bool
	FetchSucceeded bool
	Authenticated  bool
}

// Decide maps the state to a decision:
//
//	no token                              -> Redirect
//	token, fetch unsettled                -> RenderVerifying
//	token, fetch failed                   -> Redirect
//	token, fetch ok, not authenticated    -> Redirect
//	token, fetch ok, authenticated        -> Render
func Decide(s State) Decision {
	if !s.TokenPresent {
		return Redirect
	}
	if !s.FetchSettled {
		return RenderVerifying
	}
	if !s.FetchSucceeded || !s.Authenticated {
		return Redirect
	}
	return Render
}

// Evaluate derives the decision inputs from the live session store and
// the identity query result.
func Evaluate(store *session.Store, result identity.Result) Decision {
	return Decide(State{
		TokenPresent:   store.Token() != "",
		FetchSettled:   result.Settled(),
		FetchSucceeded: result.Succeeded(),
		Authenticated:  store.IsAuthenticated(),
	})
}
