// Package buildinfo holds the version stamp of the keyforge binary.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/keyforge/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/keyforge/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/keyforge/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// ShortCommit returns the first 7 characters of Commit.
func ShortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, built %s)\n", Version, ShortCommit(), Date)
}

// Generator names this build in run manifests and PDF metadata, for example
// "keyforge v1.2.0" or "keyforge dev+3f9a2c1".
func Generator() string {
	if Version == "dev" && Commit != "none" {
		return "keyforge dev+" + ShortCommit()
	}
	return "keyforge " + Version
}
