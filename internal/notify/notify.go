// Package notify raises one-shot desktop alerts. Missing tools or denied
// permission make Send a silent no-op for callers that ignore its error.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

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

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// Recorder keeps sent notifications in memory.
type Recorder struct {
	Sent []Notification
}

func (r *Recorder) Send(n Notification) error {
	r.Sent = append(r.Sent, n)
	return nil
}

func New(enabled bool) DesktopNotifier {
	if !enabled {
		return NoopDesktopNotifier{}
	}
	return ExecDesktopNotifier{}
}

// SessionEnded is the alert for an expired focus or break session.
func SessionEnded(mode string) Notification {
	body := "Ready to focus?"
	if mode == "focus" {
		body = "Time for a break!"
	}
	return Notification{Title: "Time's up!", Body: body, Level: "info", At: time.Now().UTC()}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
