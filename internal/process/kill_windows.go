//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillGroup kills a browser process and its children with taskkill.
// /F = force kill, /T = terminate child processes (tree kill).
func KillGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; launcher.Kill() remains the fallback.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
