package mcpserver

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/erraggy/asynctools/spec"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listChannelsInput struct {
	Spec    specInput `json:"spec"               jsonschema:"The AsyncAPI document"`
	Name    string    `json:"name,omitempty"     jsonschema:"Filter by channel name (supports * and ? glob)"`
	Address string    `json:"address,omitempty"  jsonschema:"Filter by channel address (supports * and ? glob)"`
	GroupBy string    `json:"group_by,omitempty" jsonschema:"Group results and return counts instead of individual items. Values: message"`
	Offset  int       `json:"offset,omitempty"   jsonschema:"Skip the first N results (for pagination)"`
	Limit   int       `json:"limit,omitempty"    jsonschema:"Maximum number of results to return (default 100)"`
}

type channelSummary struct {
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Messages   []string `json:"messages,omitempty"`
	Parameters []string `json:"parameters,omitempty"`
	Servers    []string `json:"servers,omitempty"`
}

type listChannelsOutput struct {
	Total    int              `json:"total"`
	Matched  int              `json:"matched"`
	Returned int              `json:"returned"`
	Channels []channelSummary `json:"channels,omitempty"`
	Groups   []groupCount     `json:"groups,omitempty"`
}

func handleListChannels(_ context.Context, _ *mcp.CallToolRequest, input listChannelsInput) (*mcp.CallToolResult, listChannelsOutput, error) {
	if err := validateGroupBy(input.GroupBy, []string{"message"}); err != nil {
		return errResult(err), listChannelsOutput{}, nil
	}
	for _, p := range []string{input.Name, input.Address} {
		if err := validateGlobPattern(p); err != nil {
			return errResult(err), listChannelsOutput{}, nil
		}
	}

	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), listChannelsOutput{}, nil
	}
	doc := result.Document

	var matched []channelSummary
	for _, name := range doc.ChannelNames() {
		ch := doc.Channels[name]
		if !matchGlob(input.Name, name) || !matchGlob(input.Address, ch.Address) {
			continue
		}
		matched = append(matched, channelSummary{
			Name:       name,
			Address:    ch.Address,
			Messages:   ch.MessageNames(),
			Parameters: sortedNames(ch.Parameters),
			Servers:    ch.Servers,
		})
	}

	output := listChannelsOutput{Total: len(doc.Channels), Matched: len(matched)}
	if input.GroupBy != "" {
		output.Groups = groupAndSort(matched, func(c channelSummary) []string { return c.Messages })
		output.Returned = len(output.Groups)
		return nil, output, nil
	}
	output.Channels = paginate(matched, input.Offset, input.Limit)
	output.Returned = len(output.Channels)
	return nil, output, nil
}

type listOperationsInput struct {
	Spec    specInput `json:"spec"               jsonschema:"The AsyncAPI document"`
	Action  string    `json:"action,omitempty"   jsonschema:"Filter by action: send or receive"`
	Channel string    `json:"channel,omitempty"  jsonschema:"Filter by channel name (supports * and ? glob)"`
	Name    string    `json:"name,omitempty"     jsonschema:"Filter by operation name (supports * and ? glob)"`
	GroupBy string    `json:"group_by,omitempty" jsonschema:"Group results and return counts instead of individual items. Values: action, channel"`
	Offset  int       `json:"offset,omitempty"   jsonschema:"Skip the first N results (for pagination)"`
	Limit   int       `json:"limit,omitempty"    jsonschema:"Maximum number of results to return (default 100)"`
}

type operationSummary struct {
	Name     string   `json:"name"`
	ID       string   `json:"id"`
	Action   string   `json:"action"`
	Channel  string   `json:"channel"`
	Messages []string `json:"messages,omitempty"`
	Summary  string   `json:"summary,omitempty"`
}

type listOperationsOutput struct {
	Total      int                `json:"total"`
	Matched    int                `json:"matched"`
	Returned   int                `json:"returned"`
	Operations []operationSummary `json:"operations,omitempty"`
	Groups     []groupCount       `json:"groups,omitempty"`
}

func handleListOperations(_ context.Context, _ *mcp.CallToolRequest, input listOperationsInput) (*mcp.CallToolResult, listOperationsOutput, error) {
	if err := validateGroupBy(input.GroupBy, []string{"action", "channel"}); err != nil {
		return errResult(err), listOperationsOutput{}, nil
	}
	if input.Action != "" {
		if _, err := spec.ParseAction(strings.ToLower(input.Action)); err != nil {
			return errResult(fmt.Errorf("invalid action filter: %w", err)), listOperationsOutput{}, nil
		}
	}
	for _, p := range []string{input.Channel, input.Name} {
		if err := validateGlobPattern(p); err != nil {
			return errResult(err), listOperationsOutput{}, nil
		}
	}

	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), listOperationsOutput{}, nil
	}
	doc := result.Document

	var matched []operationSummary
	for _, name := range doc.OperationNames() {
		op := doc.Operations[name]
		if input.Action != "" && !strings.EqualFold(input.Action, string(op.Action)) {
			continue
		}
		if !matchGlob(input.Channel, op.Channel.Name) || !matchGlob(input.Name, name) {
			continue
		}
		messages := makeSlice[string](len(op.Messages))
		for _, m := range op.Messages {
			messages = append(messages, m.Name)
		}
		matched = append(matched, operationSummary{
			Name:     name,
			ID:       op.EffectiveID(name),
			Action:   string(op.Action),
			Channel:  op.Channel.Name,
			Messages: messages,
			Summary:  op.Summary,
		})
	}

	output := listOperationsOutput{Total: len(doc.Operations), Matched: len(matched)}
	if input.GroupBy != "" {
		groupBy := strings.ToLower(input.GroupBy)
		output.Groups = groupAndSort(matched, func(o operationSummary) []string {
			if groupBy == "action" {
				return []string{o.Action}
			}
			return []string{o.Channel}
		})
		output.Returned = len(output.Groups)
		return nil, output, nil
	}
	output.Operations = paginate(matched, input.Offset, input.Limit)
	output.Returned = len(output.Operations)
	return nil, output, nil
}

// sortedNames returns the keys of m in ascending order, or nil when m is empty.
func sortedNames[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(m))
}
