package ui

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// Platform side effects. Tests replace them with no-ops via
// StubPlatformActions() to prevent touching the clipboard, the browser or
// the microphone.
var (
	copyToClipboardFn = clipboard.WriteAll
	openURLFn         = openURLImpl
	lookPathFn        = exec.LookPath
	runVoiceFn        = runVoiceImpl
	writePrintFileFn  = writePrintFileImpl
)

// VoiceTimeout bounds a single dictation run.
const VoiceTimeout = 30 * time.Second

// StubPlatformActions replaces platform functions with no-ops and returns a
// restore function.
func StubPlatformActions() (restore func()) {
	origCopy := copyToClipboardFn
	origOpen := openURLFn
	origLook := lookPathFn
	origVoice := runVoiceFn
	origPrint := writePrintFileFn
	copyToClipboardFn = func(string) error { return nil }
	openURLFn = func(string) error { return nil }
	lookPathFn = func(file string) (string, error) { return "", exec.ErrNotFound }
	runVoiceFn = func(context.Context, []string) (string, error) { return "", nil }
	writePrintFileFn = func(name string, _ []byte) (string, error) { return filepath.Join(os.TempDir(), name), nil }
	return func() {
		copyToClipboardFn = origCopy
		openURLFn = origOpen
		lookPathFn = origLook
		runVoiceFn = origVoice
		writePrintFileFn = origPrint
	}
}

// voiceAvailable reports whether the configured dictation command exists.
func voiceAvailable(args []string) bool {
	if len(args) == 0 {
		return false
	}
	_, err := lookPathFn(args[0])
	return err == nil
}

// runVoiceImpl runs the dictation command and returns its trimmed stdout.
func runVoiceImpl(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("no voice command configured")
	}
	ctx, cancel := context.WithTimeout(ctx, VoiceTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, args[0], args[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf("voice command %s: %w", args[0], err)
	}
	return strings.TrimSpace(string(out)), nil
}

// writePrintFileImpl stores a printable page in the temp dir and returns its path.
func writePrintFileImpl(name string, data []byte) (string, error) {
	dir := filepath.Join(os.TempDir(), "lawlens")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// openURLImpl is the real browser-open implementation.
// Uses a detached context since the child process outlives the caller.
func openURLImpl(url string) error {
	ctx := context.Background()

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "linux":
		if _, err := exec.LookPath("xdg-open"); err == nil {
			cmd = exec.CommandContext(ctx, "xdg-open", url)
		} else {
			return fmt.Errorf("xdg-open not found (install xdg-utils)")
		}
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
