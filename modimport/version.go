package modimport

import (
	"fmt"

	"golang.org/x/mod/semver"

	"nullc/common"
)

// CheckVersion compares a dependency's declared version against this
// compiler's own (common.NullCVersion), the structural-invariant check
// described in SPEC_FULL.md §4.3 ("binary module cache header versioning")
// and surfaced at the call site as report.ErrImport "version mismatch".
// semver.Compare requires a leading "v"; bare `major.minor.patch` strings
// (how both nullc-version and a bytecode header's FormatVersion are
// written) are normalized before comparing.
func CheckVersion(want string) error {
	a, b := canonicalize(want), canonicalize(common.NullCVersion)

	if !semver.IsValid(a) {
		return fmt.Errorf("not a valid version: %q", want)
	}
	if !semver.IsValid(b) {
		return fmt.Errorf("compiler version %q is not valid semver", common.NullCVersion)
	}

	if semver.Major(a) != semver.Major(b) {
		return fmt.Errorf("major version mismatch: want v%s, have v%s", want, common.NullCVersion)
	}

	return nil
}

func canonicalize(v string) string {
	if len(v) == 0 || v[0] != 'v' {
		return "v" + v
	}
	return v
}
