package parser

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// SourceLocation represents a position in a source document.
// Line and Column are 1-based (matching editor conventions).
// A zero Line value indicates the location is unknown.
type SourceLocation struct {
	// Line is the 1-based line number (0 if unknown)
	Line int
	// Column is the 1-based column number (0 if unknown)
	Column int
	// File is the source file path (empty when parsed from memory)
	File string
}

// IsKnown returns true if this location has valid line information.
func (s SourceLocation) IsKnown() bool {
	return s.Line > 0
}

// String returns a human-readable location string.
// Format: "file:line:column" or "line:column" if no file, or "<unknown>" if not known.
func (s SourceLocation) String() string {
	if !s.IsKnown() {
		if s.File != "" {
			return s.File
		}
		return "<unknown>"
	}
	if s.File != "" {
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// SourceMap maps dotted document paths to source locations.
//
// Paths use the same notation as validation findings: mapping keys are
// joined with "." and sequence items are suffixed with "[i]", for example
// "channels.events.messages.Event.payload" or "operations.send.messages[0]".
type SourceMap struct {
	// locations maps paths to their value positions
	locations map[string]SourceLocation
	// keyLocations maps paths to the position of the mapping key that introduced them
	keyLocations map[string]SourceLocation
}

// NewSourceMap creates an empty SourceMap.
func NewSourceMap() *SourceMap {
	return &SourceMap{
		locations:    make(map[string]SourceLocation),
		keyLocations: make(map[string]SourceLocation),
	}
}

// Get returns the source location for a path.
// Returns a zero SourceLocation if the path is not found.
func (sm *SourceMap) Get(path string) SourceLocation {
	if sm == nil {
		return SourceLocation{}
	}
	return sm.locations[path]
}

// GetKey returns the source location of the mapping key at path.
// Returns a zero SourceLocation if the path is not found.
func (sm *SourceMap) GetKey(path string) SourceLocation {
	if sm == nil {
		return SourceLocation{}
	}
	return sm.keyLocations[path]
}

// Locate returns the location of path, or of its nearest recorded ancestor
// when path itself is absent. Findings about missing fields (an empty
// "address", say) thereby point at the object that lacks them.
func (sm *SourceMap) Locate(path string) SourceLocation {
	if sm == nil {
		return SourceLocation{}
	}
	for {
		if loc, ok := sm.keyLocations[path]; ok {
			return loc
		}
		if loc, ok := sm.locations[path]; ok {
			return loc
		}
		parent, ok := parentPath(path)
		if !ok {
			return sm.locations[""]
		}
		path = parent
	}
}

// Has returns true if the path exists in the source map.
func (sm *SourceMap) Has(path string) bool {
	if sm == nil {
		return false
	}
	_, ok := sm.locations[path]
	return ok
}

// Len returns the number of paths in the source map.
func (sm *SourceMap) Len() int {
	if sm == nil {
		return 0
	}
	return len(sm.locations)
}

// Paths returns all paths in the source map, sorted alphabetically.
// Returns nil if the receiver is nil.
func (sm *SourceMap) Paths() []string {
	if sm == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(sm.locations))
}

// set adds a location to the source map.
func (sm *SourceMap) set(path string, loc SourceLocation) {
	if sm == nil {
		return
	}
	if sm.locations == nil {
		sm.locations = make(map[string]SourceLocation)
	}
	sm.locations[path] = loc
}

// setKey adds a key location to the source map.
func (sm *SourceMap) setKey(path string, loc SourceLocation) {
	if sm == nil {
		return
	}
	if sm.keyLocations == nil {
		sm.keyLocations = make(map[string]SourceLocation)
	}
	sm.keyLocations[path] = loc
}

// setFile updates all file paths in the map. Used when the source path is
// only known after parsing.
func (sm *SourceMap) setFile(file string) {
	if sm == nil {
		return
	}
	for path, loc := range sm.locations {
		loc.File = file
		sm.locations[path] = loc
	}
	for path, loc := range sm.keyLocations {
		loc.File = file
		sm.keyLocations[path] = loc
	}
}

// parentPath strips the last segment from a dotted path.
func parentPath(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	if strings.HasSuffix(path, "]") {
		if i := strings.LastIndexByte(path, '['); i >= 0 {
			return path[:i], true
		}
	}
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[:i], true
	}
	return "", true
}
