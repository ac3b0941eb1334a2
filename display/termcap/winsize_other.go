//go:build !unix && !windows

package termcap

// sysWinsizeMethod names the platform probe where none exists.
const sysWinsizeMethod = MethodFallback

// querySysWinsize always fails on platforms without a window size API.
func querySysWinsize() (int, int, bool) {
	return 0, 0, false
}
