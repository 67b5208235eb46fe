package parser

import (
	"strings"
	"testing"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func decodeString(t *testing.T, src string, sm *SourceMap) (any, error) {
	t.Helper()
	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &root))
	d := &treeDecoder{sm: sm, file: "test.yaml"}
	return d.decode(&root, "", 0)
}

func TestTreeDecoder_Values(t *testing.T) {
	v, err := decodeString(t, "a: 1\nb: [x, true]\nc:\n  d: null\n", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": 1,
		"b": []any{"x", true},
		"c": map[string]any{"d": nil},
	}, v)
}

func TestTreeDecoder_Merge(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want any
	}{
		{
			name: "explicit key wins regardless of order",
			src:  "base: &b {x: 1, y: 2}\nout:\n  x: 9\n  <<: *b\n",
			want: map[string]any{"x": 9, "y": 2},
		},
		{
			name: "sequence of mappings",
			src:  "a: &a {x: 1}\nb: &b {y: 2}\nout:\n  <<: [*a, *b]\n",
			want: map[string]any{"x": 1, "y": 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := decodeString(t, tt.src, nil)
			require.NoError(t, err)
			m, ok := v.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.want, m["out"])
		})
	}
}

func TestTreeDecoder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{name: "non-scalar key", src: "? [a, b]\n: 1\n", wantMsg: "line 1: mapping keys must be scalars"},
		{name: "merge scalar", src: "out:\n  <<: 1\n", wantMsg: "merge value must be a mapping"},
		{name: "merge sequence of scalars", src: "out:\n  <<: [1, 2]\n", wantMsg: "merge sequence must contain mappings"},
		{
			name:    "nesting depth",
			src:     strings.Repeat("[", maxNestingDepth+10) + strings.Repeat("]", maxNestingDepth+10),
			wantMsg: "nesting exceeds 512 levels",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeString(t, tt.src, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestTreeDecoder_DuplicateKeyKind(t *testing.T) {
	_, err := decodeString(t, "a: 1\na: 2\n", nil)
	var structErr *asyncerrors.StructuralError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, "document", structErr.Kind)
	assert.Equal(t, "a", structErr.Name)

	_, err = decodeString(t, "servers:\n  prod: {}\n  prod: {}\n", nil)
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, "servers", structErr.Kind)
	assert.Equal(t, "prod", structErr.Name)
}

func TestTreeDecoder_SourceLocations(t *testing.T) {
	sm := NewSourceMap()
	_, err := decodeString(t, "a:\n  b: [x, y]\n", sm)
	require.NoError(t, err)

	assert.Equal(t, SourceLocation{Line: 2, Column: 3, File: "test.yaml"}, sm.GetKey("a.b"))
	assert.Equal(t, SourceLocation{Line: 2, Column: 6, File: "test.yaml"}, sm.Get("a.b"))
	assert.Equal(t, SourceLocation{Line: 2, Column: 10, File: "test.yaml"}, sm.Get("a.b[1]"))
}

func TestJoinPathAndMappingName(t *testing.T) {
	assert.Equal(t, "a", joinPath("", "a"))
	assert.Equal(t, "a.b", joinPath("a", "b"))
	assert.Equal(t, "document", mappingName(""))
	assert.Equal(t, "channels", mappingName("channels"))
}
