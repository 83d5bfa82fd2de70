package app

import (
	"fmt"
	"io"
)

// Version is the application version, overridden at build time via
// -ldflags "-X github.com/agbru/pivisor/internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag reports whether args contain a version flag.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version":
			return true
		}
	}
	return false
}

// PrintVersion writes the version string to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "pivisor %s\n", Version)
}
