package main

// skipWatcher signals skip whenever the operator wants to advance to the
// next track. On platforms with a non-blocking raw-stdin implementation
// (input_unix.go) any keypress skips, matching and extending spec §6's
// "reads standard input non-blocking" requirement (the original calls for
// a newline; raw mode makes any key work, not just Enter). Platforms
// without one fall back to input_fallback.go's line-buffered version.
type skipWatcher interface {
	// watch runs until stop is closed or stdin can supply no more skip
	// requests (not a terminal, raw mode unavailable, or end of input),
	// sending on skip each time the operator requests the next track.
	watch(skip chan<- struct{}, stop <-chan struct{})
}
