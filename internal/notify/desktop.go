package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifService   = "org.freedesktop.Notifications"
	notifPath      = "/org/freedesktop/Notifications"
	notifInterface = "org.freedesktop.Notifications"

	appName = "reminderd"

	urgencyCritical = byte(2)
	// expireNever keeps the notification up until it is explicitly closed.
	expireNever = int32(0)
)

// Notifier abstracts the desktop notification server so the sweeper can be
// exercised without a session bus. A non-zero replaceID means "replace that
// notification in place" rather than popping a new one.
type Notifier interface {
	Notify(replaceID uint32, title, body string) (uint32, error)
	Close(id uint32) error
}

// Desktop delivers notifications over the session bus.
type Desktop struct {
	conn *dbus.Conn
}

func NewDesktop() (*Desktop, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Desktop{conn: conn}, nil
}

func (d *Desktop) object() dbus.BusObject {
	return d.conn.Object(notifService, notifPath)
}

// Notify raises (or replaces) a critical, never-expiring desktop
// notification and returns the server-assigned id.
func (d *Desktop) Notify(replaceID uint32, title, body string) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgencyCritical),
	}
	call := d.object().Call(notifInterface+".Notify", 0,
		appName, replaceID, "", title, body, []string{}, hints, expireNever)
	if call.Err != nil {
		return 0, fmt.Errorf("notify call failed: %w", call.Err)
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("failed to read notification id: %w", err)
	}
	return id, nil
}

// Close dismisses a previously raised notification.
func (d *Desktop) Close(id uint32) error {
	if call := d.object().Call(notifInterface+".CloseNotification", 0, id); call.Err != nil {
		return fmt.Errorf("close notification failed: %w", call.Err)
	}
	return nil
}
