// Package browser opens the authorization window and tracks when the
// user closes it.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driven"
	"github.com/hubdeck/hubdeck-cli/internal/logger"
)

// Ensure Opener implements the interface.
var _ driven.ViewportOpener = (*Opener)(nil)

// chromiumBinaries are tried in order when opening an app-mode window.
// App mode gives a dedicated window whose process lifetime matches the
// window, which is what lets us detect closure.
var chromiumBinaries = []string{
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"brave-browser",
	"microsoft-edge",
}

// Opener opens authorization windows in a local browser.
type Opener struct {
	// lookPath is swappable for tests.
	lookPath func(string) (string, error)
}

// NewOpener creates a browser-backed viewport opener.
func NewOpener() *Opener {
	return &Opener{lookPath: exec.LookPath}
}

// Open shows url in a dedicated browser window of the given size. When
// a chromium-family browser is available it runs in app mode so the
// returned viewport can report when the window is closed; otherwise the
// platform's default opener is used and the viewport reports closed as
// soon as the handoff completes.
func (o *Opener) Open(url, name string, width, height int) (driven.Viewport, error) {
	for _, bin := range chromiumBinaries {
		path, err := o.lookPath(bin)
		if err != nil {
			continue
		}

		cmd := exec.Command(path,
			"--app="+url,
			fmt.Sprintf("--window-size=%d,%d", width, height),
			"--new-window",
			"--class="+name,
		)
		if err := cmd.Start(); err != nil {
			logger.Debug("Failed to start %s: %v", bin, err)
			continue
		}

		logger.Debug("Opened %s window via %s (pid %d)", name, bin, cmd.Process.Pid)
		vp := &processViewport{cmd: cmd}
		go vp.wait()
		return vp, nil
	}

	// No app-mode browser found. Hand off to the default browser; we
	// cannot see that window close, so treat the handoff itself as the
	// viewport lifetime.
	if err := openDefault(url); err != nil {
		return nil, err
	}
	logger.Debug("Opened %s in default browser (no window tracking)", name)
	return &detachedViewport{}, nil
}

// processViewport is a viewport backed by a dedicated browser process.
type processViewport struct {
	cmd *exec.Cmd

	mu     sync.Mutex
	closed bool
}

func (v *processViewport) wait() {
	_ = v.cmd.Wait() //nolint:errcheck // exit status is irrelevant
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
}

// Closed reports whether the window's process has exited.
func (v *processViewport) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// Close terminates the window's process.
func (v *processViewport) Close() error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.mu.Unlock()
	return v.cmd.Process.Kill()
}

// detachedViewport stands in when the window was opened by the
// platform's default opener and cannot be observed.
type detachedViewport struct{}

func (detachedViewport) Closed() bool { return true }
func (detachedViewport) Close() error { return nil }

// openDefault opens the URL with the platform's default browser.
func openDefault(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
