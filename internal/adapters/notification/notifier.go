// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/git-onboard/internal/config"
	"github.com/xvierd/git-onboard/internal/ports"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg *config.NotificationConfig
	// send is beeep.Notify outside of tests.
	send func(title, message string, icon any) error
}

var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg, send: beeep.Notify}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	if err := n.send(title, message, ""); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
