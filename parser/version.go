package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// version is a parsed "major.minor[.patch][-prerelease]" string.
type version struct {
	major      int
	minor      int
	patch      int
	prerelease string
}

// parseVersion parses an AsyncAPI version string such as "3.0.0" or
// "3.1.0-rc1".
func parseVersion(s string) (*version, error) {
	var prerelease string
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		prerelease = s[idx+1:]
		s = s[:idx]
	}

	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("invalid version format: %q", s)
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > math.MaxInt32 {
			return nil, fmt.Errorf("invalid version component %q in %q", part, s)
		}
		nums[i] = n
	}

	return &version{major: nums[0], minor: nums[1], patch: nums[2], prerelease: prerelease}, nil
}

// String returns the canonical form of v.
func (v *version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
	if v.prerelease != "" {
		s += "-" + v.prerelease
	}
	return s
}

// supportedMajor is the only AsyncAPI major version the document model covers.
const supportedMajor = 3

// checkVersion reports whether raw names a supported AsyncAPI version.
func checkVersion(raw string) (*version, error) {
	if raw == "" {
		return nil, fmt.Errorf("missing \"asyncapi\" version field")
	}
	v, err := parseVersion(raw)
	if err != nil {
		return nil, err
	}
	if v.major != supportedMajor {
		return nil, fmt.Errorf("unsupported asyncapi version %s (only %d.x is supported)", raw, supportedMajor)
	}
	return v, nil
}
