package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carelink/carelink/internal/session"
)

// ErrNotLoggedIn is returned by Gate when no session exists. The caller
// sends the user to the entry route.
var ErrNotLoggedIn = fmt.Errorf("not logged in, please run `carelink login` (entry: %s)", session.EntryRoute)

// WrongRoleError is returned when a session exists but belongs to a
// different section.
type WrongRoleError struct {
	Have session.Role
	Want session.Role
}

func (e *WrongRoleError) Error() string {
	return fmt.Sprintf("this section requires the %s role, but you are logged in as %s (go to %s)",
		e.Want, e.Have, e.Have.Home())
}

// NavItem is one entry of a section's navigation.
type NavItem struct {
	Name        string
	Description string
}

// Chrome is the profile summary rendered in the section header.
type Chrome struct {
	Name  string
	ID    string
	Badge string
}

// ProfileFetcher loads the Chrome for a section, e.g. the doctor's
// completion badge. Optional; sections without chrome leave it nil.
type ProfileFetcher func(ctx context.Context) (Chrome, error)

// Shell is the single parameterized replacement for the per-role layout
// duplicates: each role configures one of these instead of reimplementing
// gating and navigation.
type Shell struct {
	Role         session.Role
	Title        string
	NavItems     []NavItem
	FetchProfile ProfileFetcher
}

// Gate checks the stored session against the shell's role before any
// section command runs. It never mutates the session: a wrong role is a
// redirect, not a logout.
func (s *Shell) Gate(store session.Store) (*session.Session, error) {
	sess, err := store.Current()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	if sess.Role != s.Role {
		return nil, &WrongRoleError{Have: sess.Role, Want: s.Role}
	}
	return sess, nil
}

// Header renders the section chrome: title, identity, optional profile
// badge, and the navigation list.
func (s *Shell) Header(ctx context.Context, sess *session.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n", s.Title, sess.Email)

	if s.FetchProfile != nil {
		if chrome, err := s.FetchProfile(ctx); err == nil {
			fmt.Fprintf(&b, "%s", chrome.Name)
			if chrome.ID != "" {
				fmt.Fprintf(&b, " (%s)", chrome.ID)
			}
			if chrome.Badge != "" {
				fmt.Fprintf(&b, " [%s]", chrome.Badge)
			}
			b.WriteString("\n")
		}
		// Chrome is decoration; a fetch failure must not block the section.
	}

	for _, item := range s.NavItems {
		fmt.Fprintf(&b, "  %-14s %s\n", item.Name, item.Description)
	}
	return b.String()
}

// Logout clears the session and reports the entry route.
func Logout(store session.Store) (string, error) {
	if err := store.Clear(); err != nil {
		return "", fmt.Errorf("logout: %w", err)
	}
	return session.EntryRoute, nil
}
