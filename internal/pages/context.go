// Package pages holds one controller per page of the booking flow. Each
// controller gets an explicit Ctx built at entry instead of reaching into
// shared globals, and reports user feedback through the Notifier.
package pages

import (
	"time"

	"locotranz/internal/api"
	"locotranz/internal/session"
	"locotranz/internal/utils"
)

// Redirect targets a controller can ask the shell to navigate to.
const (
	RedirectHome  = "home"
	RedirectAdmin = "admin"
	RedirectLogin = "login"
)

// Notifier is the transient on-screen notice surface (the toast widget).
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier renders notices as log lines; the CLI's stand-in for toasts.
type LogNotifier struct {
	RequestID string
}

func (n LogNotifier) Success(msg string) {
	utils.LogEvent(n.RequestID, "toast", "success", msg)
}

func (n LogNotifier) Error(msg string) {
	utils.LogEvent(n.RequestID, "toast", "error", msg)
}

// Ctx wires a controller to its collaborators. Built once per page entry,
// discarded on navigation.
type Ctx struct {
	API     *api.Client
	Session *session.Store
	Notify  Notifier
	Now     func() time.Time
}

func (c Ctx) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c Ctx) notify() Notifier {
	if c.Notify != nil {
		return c.Notify
	}
	return LogNotifier{}
}
