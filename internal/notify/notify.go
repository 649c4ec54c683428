package notify

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notification is a transient, user-visible message (the terminal analogue
// of a toast).
type Notification struct {
	ID          uuid.UUID
	Severity    Severity
	Title       string
	Description string
}

type Notifier interface {
	Notify(n Notification)
}

func Info(title, description string) Notification {
	return Notification{ID: uuid.New(), Severity: SeverityInfo, Title: title, Description: description}
}

func Error(title, description string) Notification {
	return Notification{ID: uuid.New(), Severity: SeverityError, Title: title, Description: description}
}

// Terminal prints notifications to the storefront's output stream.
type Terminal struct {
	Out    io.Writer
	Logger *slog.Logger
}

func (t *Terminal) Notify(n Notification) {
	marker := "*"
	if n.Severity == SeverityError {
		marker = "!"
	}
	fmt.Fprintf(t.Out, "[%s] %s: %s\n", marker, n.Title, n.Description)
	if t.Logger != nil {
		t.Logger.Debug("notification", "id", n.ID, "severity", n.Severity, "title", n.Title)
	}
}

// Discard drops every notification. Used by tests that only care about
// store behaviour.
type Discard struct{}

func (Discard) Notify(Notification) {}
