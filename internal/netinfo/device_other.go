//go:build !unix

package netinfo

import "runtime"

func deviceType() string {
	return osName(runtime.GOOS)
}
