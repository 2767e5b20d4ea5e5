//go:build windows

package utils

import "syscall"

// The restarted GUI must be visible.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{HideWindow: false}
}
