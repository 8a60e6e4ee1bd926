//go:build unix

package netinfo

import (
	"runtime"
	"strings"

	"golang.org/x/sys/unix"
)

// deviceType returns the OS name and kernel release, e.g. "Linux 6.8.0"
func deviceType() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return osName(runtime.GOOS)
	}
	sysname := unix.ByteSliceToString(u.Sysname[:])
	release := unix.ByteSliceToString(u.Release[:])
	return strings.TrimSpace(sysname + " " + release)
}
