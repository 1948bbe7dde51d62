package spc700

import "github.com/retrocore/spc700/snapshot"

// ErrUnsupportedFormat is re-exported so callers of the package-level
// Init wrapper don't need to import package snapshot just to check for it
// with errors.Is.
var ErrUnsupportedFormat = snapshot.ErrUnsupportedFormat

// FormatError is re-exported for the same reason; errors.As against this
// type works whether the error came from Player.Init or spc700.Init.
type FormatError = snapshot.FormatError
