//go:build !windows

// Package process cleans up the headless Chrome processes started for image
// rasterization.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking
// down Chrome's renderer and GPU helpers with it. Errors are ignored; the
// caller still kills the leader through the launcher.
func KillProcessGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
