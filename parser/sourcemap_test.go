package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceMap(t *testing.T) {
	p := New()
	p.BuildSourceMap = true
	result, err := p.Parse(testdataPath("events.yaml"))
	require.NoError(t, err)
	sm := result.SourceMap
	require.NotNil(t, sm)
	assert.NotZero(t, sm.Len())

	tests := []struct {
		path       string
		wantLine   int
		wantColumn int
	}{
		{path: "asyncapi", wantLine: 1, wantColumn: 11},
		{path: "info.title", wantLine: 4, wantColumn: 10},
		{path: "servers.production.host", wantLine: 10, wantColumn: 11},
		{path: "servers.production.variables.region.enum[1]", wantLine: 15, wantColumn: 27},
		{path: "servers.production.security[0]", wantLine: 19, wantColumn: 9},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.True(t, sm.Has(tt.path))
			loc := sm.Get(tt.path)
			assert.Equal(t, tt.wantLine, loc.Line)
			assert.Equal(t, tt.wantColumn, loc.Column)
			assert.Equal(t, testdataPath("events.yaml"), loc.File)
		})
	}

	keyLoc := sm.GetKey("channels.userEvents")
	assert.Equal(t, 21, keyLoc.Line)
	assert.Equal(t, 3, keyLoc.Column)
	assert.Contains(t, sm.Paths(), "operations.publishSignup.messages[0]")
}

func TestSourceMapLocate(t *testing.T) {
	input := "asyncapi: 3.0.0\n" +
		"info:\n" +
		"  title: t\n" +
		"  version: '1'\n" +
		"channels:\n" +
		"  events:\n" +
		"    messages:\n" +
		"      A: {}\n"
	result, err := ParseWithOptions(WithBytes([]byte(input)), WithSourceMap(true), WithSourceName("inline.yaml"))
	require.NoError(t, err)
	sm := result.SourceMap

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "exact key", path: "channels.events", want: "inline.yaml:6:3"},
		{name: "missing field falls back to owner", path: "channels.events.address", want: "inline.yaml:6:3"},
		{name: "deep missing path", path: "channels.events.messages.A.payload", want: "inline.yaml:8:7"},
		{name: "sequence index", path: "operations.send.messages[0]", want: "inline.yaml:1:1"},
		{name: "root", path: "", want: "inline.yaml:1:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sm.Locate(tt.path).String())
		})
	}
}

func TestSourceMapNilSafe(t *testing.T) {
	var sm *SourceMap
	assert.False(t, sm.Has("info"))
	assert.Zero(t, sm.Len())
	assert.Nil(t, sm.Paths())
	assert.False(t, sm.Get("info").IsKnown())
	assert.False(t, sm.GetKey("info").IsKnown())
	assert.False(t, sm.Locate("info").IsKnown())
	sm.setFile("x")
}

func TestSourceLocationString(t *testing.T) {
	assert.Equal(t, "<unknown>", SourceLocation{}.String())
	assert.Equal(t, "a.yaml", SourceLocation{File: "a.yaml"}.String())
	assert.Equal(t, "3:4", SourceLocation{Line: 3, Column: 4}.String())
	assert.Equal(t, "a.yaml:3:4", SourceLocation{Line: 3, Column: 4, File: "a.yaml"}.String())
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{path: "a.b.c", want: "a.b", wantOK: true},
		{path: "a.b[2]", want: "a.b", wantOK: true},
		{path: "a", want: "", wantOK: true},
		{path: "", want: "", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := parentPath(tt.path)
		assert.Equal(t, tt.want, got, tt.path)
		assert.Equal(t, tt.wantOK, ok, tt.path)
	}
}
