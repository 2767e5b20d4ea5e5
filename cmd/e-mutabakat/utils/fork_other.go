//go:build !windows

package utils

import "syscall"

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}
