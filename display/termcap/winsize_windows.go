//go:build windows

package termcap

import (
	"os"

	"golang.org/x/sys/windows"
)

// sysWinsizeMethod names the platform probe on Windows.
const sysWinsizeMethod = MethodConsoleAPI

// querySysWinsize asks the Windows console for the visible window size
// of the stdout screen buffer.
func querySysWinsize() (int, int, bool) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(os.Stdout.Fd()), &info); err != nil {
		return 0, 0, false
	}
	cols := int(info.Window.Right-info.Window.Left) + 1
	rows := int(info.Window.Bottom-info.Window.Top) + 1
	if cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	return cols, rows, true
}
