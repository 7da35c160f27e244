// Package version exposes build metadata set through ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/docsite/internal/version.Version=v0.3.0"
package version

import "fmt"

var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// String renders the version line printed by --version.
func String() string {
	s := "docsite " + Version
	if GitCommit != "" {
		s += fmt.Sprintf(" (%s)", shortCommit(GitCommit))
	}
	if BuildTime != "" {
		s += " built " + BuildTime
	}
	return s
}

func shortCommit(c string) string {
	if len(c) > 12 {
		return c[:12]
	}
	return c
}
