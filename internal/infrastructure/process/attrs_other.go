//go:build !unix && !windows

package process

import "syscall"

func detachedAttrs() *syscall.SysProcAttr {
	return nil
}
