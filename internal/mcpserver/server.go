// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes asynctools capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/erraggy/asynctools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `asynctools MCP server: parses, validates, renders, and lists AsyncAPI 3.x documents.

Configuration: All defaults are configurable via ASYNCTOOLS_* environment variables set in your MCP client config.

Key settings:
- ASYNCTOOLS_CACHE_ENABLED (default: true) - disable document caching entirely
- ASYNCTOOLS_CACHE_FILE_TTL (default: 15m) - cache TTL for local file documents
- ASYNCTOOLS_CACHE_CONTENT_TTL (default: 15m) - cache TTL for inline content
- ASYNCTOOLS_LIST_LIMIT (default: 100) - default result limit for list tools
- ASYNCTOOLS_VALIDATE_NO_WARNINGS (default: false) - suppress warnings by default
- ASYNCTOOLS_VALIDATE_LINT (default: false) - report component kind mismatches as warnings

Caching: Parsed documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). Inline content is keyed by its SHA-256 hash. A background sweeper removes expired entries.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "asynctools", Version: asynctools.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate an AsyncAPI 3.x document. Reports every reference, integrity, and structural error in one pass, plus warnings, each with its dotted path and source line. Use no_warnings to focus on errors first and lint to downgrade component kind mismatches to warnings. Use offset/limit to paginate through results.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse an AsyncAPI document. Returns a structural summary: title, version, AsyncAPI version, server/channel/operation/component counts, servers, and tags. Use full=true only for small documents; for large documents use list_channels and list_operations.",
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render",
		Description: "Re-render an AsyncAPI document as JSON or YAML with deterministic key order. The document is rebuilt through the builder, so duplicate names are reported as structural errors.",
	}, handleRender)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_channels",
		Description: "List the channels of an AsyncAPI document with their addresses, messages, and parameters. Filter by name or address glob (* and ?). Use group_by=message to see which messages are shared across channels.",
	}, handleListChannels)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_operations",
		Description: "List the operations of an AsyncAPI document with their action, channel, and messages. Filter by action (send or receive), channel name, or name glob. Use group_by (action or channel) to get distribution counts instead of individual items.",
	}, handleListOperations)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is one of the allowed values.
func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
// Call this once before a filter loop so matchGlob never sees an invalid
// pattern at match time.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchGlob reports whether name matches pattern. An empty pattern matches
// everything; a pattern without wildcards must match exactly.
func matchGlob(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return pattern == name
	}
	ok, _ := filepath.Match(pattern, name)
	return ok
}
