//go:build !windows

package platform

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// waitForFile polls until path holds want or the deadline passes. Commands
// are not awaited by the platform, so their effects land asynchronously.
func waitForFile(t *testing.T, path, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		data, err := os.ReadFile(path)
		if err == nil && string(data) == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	data, _ := os.ReadFile(path)
	t.Fatalf("%s: got %q, want %q", filepath.Base(path), data, want)
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func waitForLogs(logs *observer.ObservedLogs, n int) {
	deadline := time.Now().Add(5 * time.Second)
	for logs.Len() < n && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
}

func TestOpenURLPassesTargetAsLastArgument(t *testing.T) {
	t.Parallel()
	requireShell(t)
	out := filepath.Join(t.TempDir(), "opened")

	p := newDesktop([]string{"sh", "-c", `printf %s "$1" > "$0"`, out}, zap.NewNop())
	if err := p.OpenURL("http://localhost:8000"); err != nil {
		t.Fatalf("OpenURL: %v", err)
	}
	waitForFile(t, out, "http://localhost:8000")
}

func TestMissingOpenerReturnsError(t *testing.T) {
	t.Parallel()
	p := newDesktop([]string{"lanserve-no-such-opener"}, nil)
	if err := p.OpenURL("http://localhost:8000"); !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("OpenURL: got %v, want exec.ErrNotFound", err)
	}
}

func TestFailedExitIsLogged(t *testing.T) {
	t.Parallel()
	requireShell(t)
	core, logs := observer.New(zapcore.WarnLevel)

	p := newDesktop([]string{"sh", "-c", "exit 3"}, zap.New(core))
	if err := p.OpenURL("ignored"); err != nil {
		t.Fatalf("OpenURL: start should succeed, got %v", err)
	}

	waitForLogs(logs, 1)
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["command"]; got != "sh" {
		t.Errorf("logged command: got %v, want sh", got)
	}
}

func TestCopyToClipboardWritesInBackground(t *testing.T) {
	t.Parallel()
	p := newDesktop(nil, nil)
	p.unsupported = false
	written := make(chan string, 1)
	release := make(chan struct{})
	p.writeAll = func(text string) error {
		<-release
		written <- text
		return nil
	}

	// The call returns before the writer finishes.
	if err := p.CopyToClipboard("http://192.168.1.5:8000"); err != nil {
		t.Fatalf("CopyToClipboard: %v", err)
	}
	close(release)

	select {
	case got := <-written:
		if got != "http://192.168.1.5:8000" {
			t.Errorf("clipboard: got %q, want %q", got, "http://192.168.1.5:8000")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("clipboard writer never called")
	}
}

func TestCopyToClipboardFailureIsLogged(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.WarnLevel)
	p := newDesktop(nil, zap.New(core))
	p.unsupported = false
	p.writeAll = func(string) error { return errors.New("exit status 1") }

	if err := p.CopyToClipboard("x"); err != nil {
		t.Fatalf("CopyToClipboard: %v", err)
	}
	waitForLogs(logs, 1)
	if logs.FilterMessage("clipboard write failed").Len() != 1 {
		t.Errorf("expected clipboard failure to be logged, got %v", logs.All())
	}
}

func TestCopyToClipboardWithoutUtility(t *testing.T) {
	t.Parallel()
	p := newDesktop(nil, nil)
	p.unsupported = true
	p.writeAll = func(string) error {
		t.Error("writer called although no clipboard utility exists")
		return nil
	}
	if err := p.CopyToClipboard("x"); !errors.Is(err, ErrNoClipboard) {
		t.Errorf("CopyToClipboard: got %v, want ErrNoClipboard", err)
	}
}

func TestNewSelectsImplementation(t *testing.T) {
	t.Parallel()
	p, ok := New(nil).(*desktop)
	if !ok {
		t.Fatalf("New: got %T, want *desktop", New(nil))
	}
	if len(p.opener) == 0 || p.writeAll == nil {
		t.Errorf("New: incomplete platform: %+v", p)
	}
}
