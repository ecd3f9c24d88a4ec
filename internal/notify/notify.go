// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"fmt"
	"path/filepath"

	"github.com/llehouerou/dexlog/internal/rlog"
)

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

const logNoticeTimeout = 5000

// LogNotice describes a randomizer log picked up by the watcher. replaces
// is the ID of the previous notice, so a burst of rewrites shows once.
func LogNotice(log *rlog.Log, game string, replaces uint32) Notification {
	title := "New randomizer log"
	if game != "" {
		title = fmt.Sprintf("New randomizer log for %s", game)
	}
	body := filepath.Base(log.Path)
	if log.Seed != "" {
		body += "\nSeed " + log.Seed
	}
	if n := len(log.PokemonIDs()); n > 0 {
		body += fmt.Sprintf("\n%d pokemon, %d trainers", n, len(log.TrainerIDs()))
	}
	return Notification{
		Title:      title,
		Body:       body,
		Icon:       "dialog-information",
		Timeout:    logNoticeTimeout,
		ReplacesID: replaces,
		Urgency:    UrgencyLow,
	}
}

// Nop returns a notifier that drops every notification.
func Nop() Notifier {
	return nopNotifier{}
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) (uint32, error) { return 0, nil }
func (nopNotifier) Close(uint32) error                  { return nil }
