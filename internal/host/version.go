package host

import (
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// legacyIDThreshold is the first release whose v4 API addresses
// merge-request sub-resources by iteration id. GitLab botched the v4 api
// before 9.2.3; older releases need the global database id instead.
var legacyIDThreshold = goversion.Must(goversion.NewVersion("9.2.2"))

// Version describes the host's release and edition.
type Version struct {
	Raw     string
	Release *goversion.Version
	EE      bool
}

// ParseVersion parses a host version string such as "13.2.1-ee". The
// suffix marks the Enterprise edition; the numeric core is the release.
func ParseVersion(raw string) (*Version, error) {
	core := raw
	if i := strings.IndexByte(core, '-'); i >= 0 {
		core = core[:i]
	}
	release, err := goversion.NewVersion(core)
	if err != nil {
		return nil, fmt.Errorf("parsing host version %q: %w", raw, err)
	}
	return &Version{
		Raw:     raw,
		Release: release,
		EE:      strings.Contains(raw, "-ee"),
	}, nil
}

// UsesLegacyID reports whether merge-request endpoints on this release
// must be addressed by the legacy global id.
func (v *Version) UsesLegacyID() bool {
	return v.Release.LessThan(legacyIDThreshold)
}

// EndpointID returns the identifier to put in a merge-request endpoint URL
// for the given host version.
func (r MergeRequestRef) EndpointID(v *Version) int {
	if v.UsesLegacyID() {
		return r.LegacyID
	}
	return r.IID
}
