//go:build unix

package main

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// rawSkipWatcher puts stdin into raw mode and non-blocking mode so a
// single keypress (not just a newline) advances to the next track without
// ever blocking its goroutine on read, per spec §6's behavior for the
// reference CLI player.
type rawSkipWatcher struct{}

func (rawSkipWatcher) watch(skip chan<- struct{}, stop <-chan struct{}) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return // piped stdin: no interactive skip, -s/EOF still end playback
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer term.Restore(fd, oldState)
	if err := unix.SetNonblock(fd, true); err != nil {
		return
	}

	buf := make([]byte, 1)
	for {
		select {
		case <-stop:
			return
		default:
		}
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			select {
			case skip <- struct{}{}:
			case <-stop:
				return
			}
		}
		if n == 0 {
			// non-blocking read with nothing pending: poll gently rather
			// than spin the CPU.
			time.Sleep(20 * time.Millisecond)
		}
	}
}

func newSkipWatcher() skipWatcher {
	return rawSkipWatcher{}
}
