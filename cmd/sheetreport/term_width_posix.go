//go:build !windows

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// detectTerminalWidth asks the tty behind stdout, then stderr, for its
// column count and falls back to $COLUMNS.
func detectTerminalWidth() int {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
		if err == nil && ws != nil && ws.Col > 0 {
			return int(ws.Col)
		}
	}
	return envColumns()
}
