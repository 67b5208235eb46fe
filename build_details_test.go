package asynctools

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDetails_Defaults(t *testing.T) {
	// Test binaries are never built with release ldflags.
	assert.Equal(t, "dev", Version())
	assert.Equal(t, "unknown", Commit())
	assert.Equal(t, "unknown", BuildTime())
	assert.Equal(t, runtime.Version(), GoVersion())
}

func TestBuildInfo(t *testing.T) {
	info := BuildInfo()
	lines := strings.Split(info, "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "Version: "+Version(), lines[0])
	assert.Equal(t, "Commit: "+Commit(), lines[1])
	assert.Equal(t, "Build Time: "+BuildTime(), lines[2])
	assert.Equal(t, "Go Version: "+GoVersion(), lines[3])
}
