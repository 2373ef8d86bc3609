// Package router holds which page of the site is showing.
package router

import (
	"sync"

	"github.com/anarchistempire/empire/internal/session"
)

// View is one page of the site.
type View int

const (
	Landing View = iota
	Features
	Privileges
	Admin
)

// Views lists every page in navigation order.
var Views = []View{Landing, Features, Privileges, Admin}

func (v View) String() string {
	switch v {
	case Landing:
		return "landing"
	case Features:
		return "features"
	case Privileges:
		return "privileges"
	case Admin:
		return "admin"
	}
	return "unknown"
}

// Router is the single active-view value. There is no history.
type Router struct {
	mu        sync.Mutex
	current   View
	listeners []func(View)
}

// New returns a Router showing the landing page.
func New() *Router {
	return &Router{current: Landing}
}

// Current returns the active view.
func (r *Router) Current() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// OnChange registers fn to be called with the new view after each change.
func (r *Router) OnChange(fn func(View)) {
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

// Navigate makes v the active view and reports whether it changed.
func (r *Router) Navigate(v View) bool {
	r.mu.Lock()
	if r.current == v {
		r.mu.Unlock()
		return false
	}
	r.current = v
	listeners := r.listeners
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
	return true
}

// Bind follows session transitions: login shows the admin panel, logout
// returns to the landing page. A restored session does not navigate.
func (r *Router) Bind(s *session.Store) {
	s.OnChange(func(ev session.Event) {
		switch ev.Kind {
		case session.LoggedIn:
			r.Navigate(Admin)
		case session.LoggedOut:
			r.Navigate(Landing)
		}
	})
}
