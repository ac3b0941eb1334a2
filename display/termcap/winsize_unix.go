//go:build unix

package termcap

import (
	"os"

	"golang.org/x/sys/unix"
)

// sysWinsizeMethod names the platform probe on Unix systems.
const sysWinsizeMethod = MethodIoctl

// querySysWinsize asks the kernel for the stdout window size via the
// TIOCGWINSZ ioctl. It answers even when higher level probes are
// confused by wrappers, as long as stdout is still a tty.
func querySysWinsize() (int, int, bool) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 0, 0, false
	}
	return int(ws.Col), int(ws.Row), true
}
