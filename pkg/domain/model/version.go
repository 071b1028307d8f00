package model

import (
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/m-mizutani/goerr/v2"
)

// artifactVersionPattern matches "<prefix>-PR-<n>-<major>.<minor>.<patch><suffix>".
// The suffix must not start with a digit so that "1.4.10" is never read as "1.4.1".
var artifactVersionPattern = regexp.MustCompile(`^.+-PR-\d+-(\d+\.\d+\.\d+)(?:[^0-9].*)?$`)

// Version is a release version embedded in an artifact name
type Version struct {
	raw    string
	semver *semver.Version
}

// ParseVersion extracts the version from an artifact name.
func ParseVersion(artifactName string) (*Version, error) {
	m := artifactVersionPattern.FindStringSubmatch(artifactName)
	if m == nil {
		return nil, goerr.Wrap(ErrInvalidArtifactName, "version not found in artifact name: "+artifactName,
			goerr.V("artifact_name", artifactName))
	}

	v, err := semver.NewVersion(m[1])
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidArtifactName, "malformed version in artifact name: "+artifactName,
			goerr.V("artifact_name", artifactName),
			goerr.V("version", m[1]),
		)
	}

	return &Version{raw: m[1], semver: v}, nil
}

// String returns the version exactly as written in the artifact name
func (v *Version) String() string {
	return v.raw
}

// Tag returns the release tag name, e.g. "v1.4.0"
func (v *Version) Tag() string {
	return "v" + v.raw
}

// Semver returns the parsed semantic version
func (v *Version) Semver() *semver.Version {
	return v.semver
}
