//go:build unix

package process

import "syscall"

// detachedAttrs puts the child in its own session so terminal signals aimed
// at the launcher do not reach it.
func detachedAttrs() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
