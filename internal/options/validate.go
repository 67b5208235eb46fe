// Package options provides shared utilities for option validation across packages.
package options

import (
	"strings"

	"github.com/erraggy/asynctools/asyncerrors"
)

// Source names one way of supplying an input and whether it was supplied.
type Source struct {
	Name string
	Set  bool
}

// SingleInputSource ensures exactly one of sources is set. The returned
// *asyncerrors.ConfigError lists the alternatives by name.
func SingleInputSource(option string, sources ...Source) error {
	names := make([]string, 0, len(sources))
	var set []string
	for _, s := range sources {
		names = append(names, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &asyncerrors.ConfigError{
			Option:  option,
			Message: "must specify an input source (" + strings.Join(names, ", ") + ")",
		}
	default:
		return &asyncerrors.ConfigError{
			Option:  option,
			Value:   strings.Join(set, ", "),
			Message: "must specify exactly one input source",
		}
	}
}
