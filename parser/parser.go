package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/logging"
	"github.com/erraggy/asynctools/spec"
)

// DefaultMaxFileSize is the input size limit used when Parser.MaxFileSize is zero.
const DefaultMaxFileSize int64 = 10 << 20

// Parser handles AsyncAPI document parsing
type Parser struct {
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger logging.Logger
	// BuildSourceMap enables source location tracking during parsing.
	// When enabled, ParseResult.SourceMap maps every document path to the
	// line and column it was read from.
	// Default: false
	BuildSourceMap bool
	// MaxFileSize is the maximum input size in bytes.
	// Default: 10MB
	MaxFileSize int64
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{MaxFileSize: DefaultMaxFileSize}
}

// ParseResult contains a parsed document and metadata about its source.
type ParseResult struct {
	// SourcePath is the path the document was read from.
	// Note: if the source was not a file path, this will be set to the name of the method
	// and end in '.yaml' or '.json' based on the detected format
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the document's "asyncapi" version string
	Version string
	// Document is the decoded document
	Document *spec.Document
	// LoadTime is the time taken to read the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// SourceMap maps document paths to source locations.
	// Only populated when Parser.BuildSourceMap is true.
	SourceMap *SourceMap
}

// Parse parses an AsyncAPI document file. The format is taken from the
// file extension, falling back to the content.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := p.readFile(path)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, err
	}

	format := detectFormatFromPath(path)
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}
	res, err := p.parse(data, path, format)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ParseReader parses an AsyncAPI document from an io.Reader
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseReader.yaml or ParseReader.json
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, &asyncerrors.ParseError{Path: "ParseReader", Message: "failed to read data", Cause: err}
	}
	if int64(len(data)) > limit {
		return nil, &asyncerrors.ParseError{
			Path:    "ParseReader",
			Message: fmt.Sprintf("input exceeds maximum size of %s", FormatBytes(limit)),
		}
	}

	format := detectFormatFromContent(data)
	res, err := p.parse(data, sourceName("ParseReader", format), format)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes parses an AsyncAPI document from a byte slice
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseBytes.yaml or ParseBytes.json
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	if limit := p.maxFileSize(); int64(len(data)) > limit {
		return nil, &asyncerrors.ParseError{
			Path:    "ParseBytes",
			Message: fmt.Sprintf("input exceeds maximum size of %s", FormatBytes(limit)),
		}
	}
	format := detectFormatFromContent(data)
	return p.parse(data, sourceName("ParseBytes", format), format)
}

// parse decodes data into a document. Every failure is either an
// *asyncerrors.StructuralError (duplicate key) or an *asyncerrors.ParseError.
func (p *Parser) parse(data []byte, sourcePath string, format SourceFormat) (*ParseResult, error) {
	log := logging.OrNop(p.Logger)

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &asyncerrors.ParseError{Path: sourcePath, Message: "document is empty"}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &asyncerrors.ParseError{Path: sourcePath, Message: "invalid " + string(format), Cause: err}
	}

	d := &treeDecoder{file: sourcePath}
	if p.BuildSourceMap {
		d.sm = NewSourceMap()
	}
	tree, err := d.decode(&root, "", 0)
	if err != nil {
		var structErr *asyncerrors.StructuralError
		if errors.As(err, &structErr) {
			return nil, err
		}
		return nil, &asyncerrors.ParseError{Path: sourcePath, Message: "invalid " + string(format), Cause: err}
	}

	obj, ok := tree.(map[string]any)
	if !ok {
		return nil, &asyncerrors.ParseError{Path: sourcePath, Message: "document root must be a mapping"}
	}

	rawVersion, ok := obj["asyncapi"].(string)
	if !ok && obj["asyncapi"] != nil {
		return nil, &asyncerrors.ParseError{Path: sourcePath, Message: `"asyncapi" must be a string`}
	}
	v, err := checkVersion(rawVersion)
	if err != nil {
		return nil, &asyncerrors.ParseError{Path: sourcePath, Message: "unsupported document", Cause: err}
	}

	encoded, err := json.Marshal(obj)
	if err != nil {
		return nil, &asyncerrors.ParseError{Path: sourcePath, Message: "failed to encode document tree", Cause: err}
	}
	doc := new(spec.Document)
	if err := json.Unmarshal(encoded, doc); err != nil {
		return nil, &asyncerrors.ParseError{Path: sourcePath, Message: "document does not match the AsyncAPI model", Cause: err}
	}

	log.Debug("parsed document",
		"source", sourcePath,
		"format", string(format),
		"version", v.String(),
		"channels", len(doc.Channels),
		"operations", len(doc.Operations),
	)

	return &ParseResult{
		SourcePath:   sourcePath,
		SourceFormat: format,
		Version:      rawVersion,
		Document:     doc,
		SourceSize:   int64(len(data)),
		SourceMap:    d.sm,
	}, nil
}

// readFile reads path, refusing files above the size limit.
func (p *Parser) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &asyncerrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}
	if limit := p.maxFileSize(); info.Size() > limit {
		return nil, &asyncerrors.ParseError{
			Path:    path,
			Message: fmt.Sprintf("file size %s exceeds maximum of %s", FormatBytes(info.Size()), FormatBytes(limit)),
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &asyncerrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}
	return data, nil
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// sourceName names an in-memory source after the method that read it.
func sourceName(method string, format SourceFormat) string {
	if format == SourceFormatJSON {
		return method + ".json"
	}
	return method + ".yaml"
}
