package notesrv

import (
	_ "embed"
)

// Version is the release of notesrv, read from the VERSION file at build time.
//
//go:embed VERSION
var Version string
