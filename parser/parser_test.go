package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdataPath(name string) string {
	return filepath.Join("..", "testdata", name)
}

func TestParseFile(t *testing.T) {
	p := New()
	result, err := p.Parse(testdataPath("events.yaml"))
	require.NoError(t, err)

	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, "3.0.0", result.Version)
	assert.Equal(t, testdataPath("events.yaml"), result.SourcePath)
	assert.NotZero(t, result.SourceSize)
	assert.Nil(t, result.SourceMap)

	doc := result.Document
	require.NotNil(t, doc)
	assert.Equal(t, "Events", doc.Info.Title)
	assert.Equal(t, "1.0", doc.Info.Version)
	assert.Equal(t, "urn:example:events", doc.ID)
	assert.Equal(t, []string{"production"}, doc.ServerNames())
	assert.Equal(t, []string{"userEvents"}, doc.ChannelNames())
	assert.Equal(t, []string{"consumeDeletions", "publishSignup"}, doc.OperationNames())

	server := doc.Servers["production"]
	assert.Equal(t, "kafka", server.Protocol)
	assert.Equal(t, []string{"eu-west-1", "us-east-1"}, server.Variables["region"].Enum)
	assert.Equal(t, "9092", server.Variables["port"].Default)
	assert.Equal(t, []spec.Reference{spec.Ref(spec.KindSecuritySchemes, "saslScram")}, server.Security)

	channel := doc.Channels["userEvents"]
	assert.Equal(t, "users.{userId}.events", channel.Address)
	assert.Equal(t, []string{"UserDeleted", "UserSignedUp"}, channel.MessageNames())
	signedUp := channel.Messages["UserSignedUp"]
	require.NotNil(t, signedUp.Ref)
	assert.Equal(t, spec.Ref(spec.KindMessages, "UserSignedUp"), *signedUp.Ref)
	require.NotNil(t, channel.Bindings)
	require.NotNil(t, channel.Bindings.Value)
	assert.True(t, channel.Bindings.Value.Has("kafka"))

	op := doc.Operations["publishSignup"]
	assert.Equal(t, spec.ActionSend, op.Action)
	assert.Equal(t, spec.ChannelRef{Name: "userEvents"}, op.Channel)
	assert.Equal(t, []spec.MessageRef{{Channel: "userEvents", Name: "UserSignedUp"}}, op.Messages)

	assert.True(t, doc.Components.Has(spec.KindSchemas, "UserSignedUp"))
	assert.True(t, doc.Components.Has(spec.KindMessages, "UserSignedUp"))
	require.Contains(t, doc.Components.SecuritySchemes, "saslScram")
	assert.Equal(t, spec.SecurityUserPassword, doc.Components.SecuritySchemes["saslScram"].Type())
}

func TestParseJSONAndYAMLAgree(t *testing.T) {
	fromYAML, err := New().Parse(testdataPath("events.yaml"))
	require.NoError(t, err)

	rendered, err := Render(fromYAML.Document, SourceFormatJSON)
	require.NoError(t, err)

	fromJSON, err := New().ParseBytes(rendered)
	require.NoError(t, err)
	assert.Equal(t, SourceFormatJSON, fromJSON.SourceFormat)
	assert.Equal(t, "ParseBytes.json", fromJSON.SourcePath)
	assert.Equal(t, fromYAML.Document, fromJSON.Document)
}

func TestParseReader(t *testing.T) {
	data, err := os.ReadFile(testdataPath("events.yaml"))
	require.NoError(t, err)

	result, err := New().ParseReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "ParseReader.yaml", result.SourcePath)
	assert.Equal(t, int64(len(data)), result.SourceSize)
}

func TestParseDuplicateKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind string
		wantName string
	}{
		{
			name:     "yaml file",
			input:    "file",
			wantKind: "channels",
			wantName: "events",
		},
		{
			name:     "json channel",
			input:    `{"asyncapi":"3.0.0","info":{"title":"t","version":"1"},"channels":{"a":{"address":"a"},"a":{"address":"b"}}}`,
			wantKind: "channels",
			wantName: "a",
		},
		{
			name:     "json root",
			input:    `{"asyncapi":"3.0.0","info":{"title":"t","version":"1"},"info":{}}`,
			wantKind: "document",
			wantName: "info",
		},
		{
			name:     "nested component",
			input:    "asyncapi: 3.0.0\ninfo: {title: t, version: '1'}\ncomponents:\n  messages:\n    Shared: {}\n    Shared: {}\n",
			wantKind: "components.messages",
			wantName: "Shared",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.input == "file" {
				_, err = New().Parse(testdataPath("duplicate-keys.yaml"))
			} else {
				_, err = New().ParseBytes([]byte(tt.input))
			}

			var structErr *asyncerrors.StructuralError
			require.ErrorAs(t, err, &structErr)
			assert.Equal(t, tt.wantKind, structErr.Kind)
			assert.Equal(t, tt.wantName, structErr.Name)
			assert.NotErrorIs(t, err, asyncerrors.ErrParse)
		})
	}
}

func TestParseDuplicateKeyLines(t *testing.T) {
	_, err := New().Parse(testdataPath("duplicate-keys.yaml"))
	require.Error(t, err)
	assert.Equal(t,
		`structural error: duplicate channels "events": key on line 8 was already defined on line 6`,
		err.Error())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "empty", input: "  \n", wantMsg: "document is empty"},
		{name: "malformed yaml", input: "asyncapi: [3.0.0\n", wantMsg: "invalid yaml"},
		{name: "malformed json", input: `{"asyncapi": `, wantMsg: "invalid json"},
		{name: "scalar root", input: "just text", wantMsg: "document root must be a mapping"},
		{name: "missing version", input: "info: {title: t, version: '1'}", wantMsg: `missing "asyncapi" version field`},
		{name: "numeric version", input: "asyncapi: 3.0\ninfo: {title: t, version: '1'}", wantMsg: `"asyncapi" must be a string`},
		{name: "asyncapi 2", input: "asyncapi: 2.6.0\ninfo: {title: t, version: '1'}", wantMsg: "unsupported asyncapi version 2.6.0"},
		{name: "bad version", input: "asyncapi: three\ninfo: {title: t, version: '1'}", wantMsg: "invalid version format"},
		{name: "model mismatch", input: "asyncapi: 3.0.0\ninfo: {title: t, version: '1'}\nchannels: [a, b]", wantMsg: "document does not match the AsyncAPI model"},
		{name: "bad reference", input: "asyncapi: 3.0.0\ninfo: {title: t, version: '1'}\noperations:\n  op:\n    action: send\n    channel: {$ref: 'other.yaml#/x'}", wantMsg: "document does not match the AsyncAPI model"},
		{name: "non scalar key", input: "asyncapi: 3.0.0\n? [a, b]\n: c\n", wantMsg: "mapping keys must be scalars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().ParseBytes([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, asyncerrors.ErrParse)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := New().Parse(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, asyncerrors.ErrParse)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseMaxFileSize(t *testing.T) {
	p := &Parser{MaxFileSize: 16}
	input := "asyncapi: 3.0.0\ninfo: {title: t, version: '1'}\n"

	_, err := p.ParseBytes([]byte(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum size of 16 B")

	_, err = p.ParseReader(strings.NewReader(input))
	assert.ErrorIs(t, err, asyncerrors.ErrParse)

	path := filepath.Join(t.TempDir(), "big.yaml")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o600))
	_, err = p.Parse(path)
	assert.ErrorIs(t, err, asyncerrors.ErrParse)
}

func TestParseAnchorsAndMerge(t *testing.T) {
	input := `asyncapi: 3.0.0
info: {title: t, version: '1'}
x-defaults: &defaults
  address: shared
  description: from merge
channels:
  a:
    <<: *defaults
    description: explicit
  b: *defaults
`
	result, err := New().ParseBytes([]byte(input))
	require.NoError(t, err)

	a := result.Document.Channels["a"]
	assert.Equal(t, "shared", a.Address)
	assert.Equal(t, "explicit", a.Description)
	assert.Equal(t, "shared", result.Document.Channels["b"].Address)
}

func TestSourceFormatHelpers(t *testing.T) {
	assert.Equal(t, SourceFormatJSON, ParseSourceFormat("JSON"))
	assert.Equal(t, SourceFormatYAML, ParseSourceFormat("yml"))
	assert.Equal(t, SourceFormatUnknown, ParseSourceFormat("xml"))

	assert.Equal(t, SourceFormatYAML, detectFormatFromPath("a.YAML"))
	assert.Equal(t, SourceFormatUnknown, detectFormatFromPath("a.txt"))
	assert.Equal(t, SourceFormatJSON, detectFormatFromContent([]byte("\n {")))
	assert.Equal(t, SourceFormatUnknown, detectFormatFromContent(nil))

	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KiB", FormatBytes(1536))
	assert.Equal(t, "10.0 MiB", FormatBytes(DefaultMaxFileSize))
}

func TestCheckVersion(t *testing.T) {
	v, err := checkVersion("3.1.0-rc1")
	require.NoError(t, err)
	assert.Equal(t, "3.1.0-rc1", v.String())

	v, err = checkVersion("3.0")
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", v.String())

	_, err = checkVersion("3.x.0")
	assert.Error(t, err)
}
