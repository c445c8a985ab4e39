// Package notify sends desktop notifications about finished acquisitions.
package notify

import (
	"fmt"
	"path/filepath"
)

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

const (
	appName = "songdl"

	// defaultTimeout is how long acquisition notices stay up, in ms.
	defaultTimeout int32 = 5000
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title   string  // Summary text (required)
	Body    string  // Body text (optional)
	Icon    string  // Icon name (optional)
	Timeout int32   // ms, -1 = server default, 0 = never expire
	Urgency Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are unavailable.
	Notify(n Notification) (uint32, error)
}

// Saved describes a song that finished the cycle. An unplaced file is
// reported as kept at its download location.
func Saved(title, artists, path string, placed bool) Notification {
	body := title
	if artists != "" {
		body = fmt.Sprintf("%s by %s", title, artists)
	}
	if placed {
		body += "\nMoved to " + filepath.Dir(path)
	} else {
		body += "\nSaved as " + filepath.Base(path)
	}
	return Notification{
		Title:   "Song saved",
		Body:    body,
		Icon:    "audio-x-generic",
		Timeout: defaultTimeout,
		Urgency: UrgencyNormal,
	}
}

// Failed describes an acquisition that stopped at a step.
func Failed(message string) Notification {
	return Notification{
		Title:   "Song download failed",
		Body:    message,
		Icon:    "dialog-error",
		Timeout: defaultTimeout,
		Urgency: UrgencyCritical,
	}
}
