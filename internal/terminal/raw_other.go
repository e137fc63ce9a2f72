//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

import "errors"

var errRawUnsupported = errors.New("raw terminal mode is not supported on this platform")

func makeRaw(int) (func() error, error) {
	return nil, errRawUnsupported
}

func isTerminal(int) bool {
	return false
}
