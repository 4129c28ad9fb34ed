// Package device abstracts platform capabilities that differ between
// environments. Callers receive an implementation at startup instead of
// probing the platform themselves.
package device

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
)

// Capabilities is the set of host-side actions a portal may ask for.
// Implementations never fail the caller's flow: an unsupported action is
// logged and skipped.
type Capabilities interface {
	// OpenDocument hands a downloaded file to the host's viewer.
	OpenDocument(path string) error
	// Share hands text to the host's share mechanism.
	Share(text string) error
}

// Host opens documents with the operating system's default handler.
type Host struct {
	Logger zerolog.Logger
}

func (h Host) OpenDocument(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		h.Logger.Warn().Err(err).Str("path", path).Msg("no viewer available, file left on disk")
		return nil
	}
	return nil
}

func (h Host) Share(text string) error {
	// No native share sheet on a workstation; write the payload somewhere
	// the user can pick it up.
	path := filepath.Join(os.TempDir(), "healthbridge-share.txt")
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return fmt.Errorf("share: %w", err)
	}
	h.Logger.Info().Str("path", path).Msg("share payload written")
	return nil
}

// Noop logs each requested action and does nothing, for headless runs and
// tests.
type Noop struct {
	Logger zerolog.Logger
}

func (n Noop) OpenDocument(path string) error {
	n.Logger.Warn().Str("path", path).Msg("document viewing not supported in this environment")
	return nil
}

func (n Noop) Share(text string) error {
	n.Logger.Warn().Int("bytes", len(text)).Msg("sharing not supported in this environment")
	return nil
}
