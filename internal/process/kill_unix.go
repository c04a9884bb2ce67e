//go:build !windows

package process

import "syscall"

// KillGroup kills a browser process and every child it spawned by sending
// SIGKILL to its process group. Non-positive PIDs are ignored: -0 would
// target our own group.
func KillGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; launcher.Kill() remains the fallback.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
