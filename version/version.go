// Package version exposes build metadata, set at link time:
//
//	go build -ldflags "-X github.com/farcloser/linecov/version.version=v1.0.0 -X github.com/farcloser/linecov/version.commit=$(git rev-parse --short HEAD)"
package version

//nolint:gochecknoglobals // set by the linker
var (
	name    = "linecov"
	version = "dev"
	commit  = "unknown"
)

// Name returns the program name.
func Name() string {
	return name
}

// Version returns the release version, "dev" for local builds.
func Version() string {
	return version
}

// Commit returns the source revision the binary was built from.
func Commit() string {
	return commit
}
