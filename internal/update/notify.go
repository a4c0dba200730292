package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/sandeepkv93/focuslog/internal/views"
)

// Notification is one message shown in the app and, when enabled, on the
// desktop. Level is "info" or "error".
type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

// ExecDesktopNotifier shells out to notify-send on Linux and osascript on
// macOS. Other platforms are silently skipped.
type ExecDesktopNotifier struct {
	GOOS string
	Run  func(name string, args ...string) error
}

func (d ExecDesktopNotifier) Send(n Notification) error {
	goos := d.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	name, args, ok := desktopCommand(goos, n)
	if !ok {
		return nil
	}
	run := d.Run
	if run == nil {
		run = func(name string, args ...string) error { return exec.Command(name, args...).Run() }
	}
	if err := run(name, args...); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func desktopCommand(goos string, n Notification) (string, []string, bool) {
	switch goos {
	case "linux":
		urgency := "normal"
		if n.Level == "error" {
			urgency = "critical"
		}
		return "notify-send", []string{"--app-name=focuslog", "--urgency=" + urgency, n.Title, n.Body}, true
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, appleScriptString(n.Body), appleScriptString(n.Title))
		return "osascript", []string{"-e", script}, true
	default:
		return "", nil, false
	}
}

func appleScriptString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

const notificationHistory = 40

// notify records the message and forwards it to the desktop notifier. A
// failing notifier is logged and never surfaces in the status bar.
func (m *Model) notify(title, body, level string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	n := Notification{Title: "focuslog: " + title, Body: body, Level: level, At: m.Tracker.Clock().Now()}
	m.Notifications = append(m.Notifications, n)
	if over := len(m.Notifications) - notificationHistory; over > 0 {
		m.Notifications = append([]Notification(nil), m.Notifications[over:]...)
	}
	if !m.DesktopEnabled || m.notifier == nil {
		return
	}
	if err := m.notifier.Send(n); err != nil {
		m.logger.Warn("desktop notification failed", "title", n.Title, "error", err)
	}
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	last := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(last.Level, last.At.Format("15:04")+" "+last.Body)
}
