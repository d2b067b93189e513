// Package version reports build information injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/rshade/adminui/pkg/version.version=v1.2.0"
package version

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ErrUnsatisfied is returned when a release does not meet a version constraint.
var ErrUnsatisfied = errors.New("version does not satisfy constraint")

//nolint:gochecknoglobals // Set at link time.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the release version.
func GetVersion() string { return version }

// GetCommit returns the git commit the binary was built from.
func GetCommit() string { return gitCommit }

// GetBuildDate returns the build timestamp.
func GetBuildDate() string { return buildDate }

// Check reports whether ver satisfies constraint. Development builds and other
// non-semver versions always pass, as does an empty constraint.
func Check(ver, constraint string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(ver)
	if err != nil {
		return nil //nolint:nilerr // Unversioned builds are not gated.
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s is not %s", ErrUnsatisfied, v, constraint)
	}
	return nil
}
