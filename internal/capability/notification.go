package capability

import (
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"
)

// Notifier delivers one desktop notification. Production uses the
// platform notifier; tests substitute a recording fake.
type Notifier interface {
	Notify(title, message string) error
}

// beeepNotifier delivers notifications through the host notification
// daemon (notify-send/dbus on Linux, Notification Center on macOS,
// toast on Windows).
type beeepNotifier struct{}

func (beeepNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// NotificationService exposes desktop notifications to the frontend.
type NotificationService struct {
	notifier Notifier
}

// NewNotificationService creates a notification service backed by the
// given notifier, or the platform notifier when nil.
func NewNotificationService(notifier Notifier) *NotificationService {
	if notifier == nil {
		notifier = beeepNotifier{}
	}
	return &NotificationService{notifier: notifier}
}

// Send shows a desktop notification. The title is required; the message
// may be empty.
func (n *NotificationService) Send(title, message string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("notification title is required")
	}
	return n.notifier.Notify(title, message)
}
