//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	busMethod = busName + ".Notify"
	busClose  = busName + ".CloseNotification"

	appName = "DexLog"
)

type busNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without one, notifications are
// dropped and New still succeeds.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Nop(), nil //nolint:nilerr // no session bus on a headless box
	}
	return &busNotifier{obj: conn.Object(busName, busPath)}, nil
}

func (n *busNotifier) Notify(notif Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant("dexlog"),
		"category":      dbus.MakeVariant("x-dexlog.log"),
	}
	var id uint32
	err := n.obj.Call(busMethod, 0,
		appName, notif.ReplacesID, notif.Icon,
		notif.Title, notif.Body,
		[]string{}, hints, notif.Timeout,
	).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("notify: %w", err)
	}
	return id, nil
}

func (n *busNotifier) Close(id uint32) error {
	if err := n.obj.Call(busClose, 0, id).Err; err != nil {
		return fmt.Errorf("close notification %d: %w", id, err)
	}
	return nil
}
