package mcpserver

import (
	"context"

	"github.com/erraggy/asynctools/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type parseInput struct {
	Spec specInput `json:"spec"           jsonschema:"The AsyncAPI document to parse"`
	Full bool      `json:"full,omitempty" jsonschema:"Return full parsed document instead of summary"`
}

type parseSummaryServer struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ResolvedURL string `json:"resolved_url"`
	Protocol    string `json:"protocol,omitempty"`
}

type parseOutput struct {
	Version        string               `json:"version"`
	Title          string               `json:"title"`
	APIVersion     string               `json:"api_version"`
	Description    string               `json:"description,omitempty"`
	ServerCount    int                  `json:"server_count"`
	ChannelCount   int                  `json:"channel_count"`
	OperationCount int                  `json:"operation_count"`
	MessageCount   int                  `json:"message_count"`
	ComponentCount int                  `json:"component_count"`
	Servers        []parseSummaryServer `json:"servers,omitempty"`
	Tags           []string             `json:"tags,omitempty"`
	Format         string               `json:"format"`
	FullDocument   string               `json:"full_document,omitempty"`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}
	doc := result.Document

	output := parseOutput{
		Version:        result.Version,
		Title:          doc.Info.Title,
		APIVersion:     doc.Info.Version,
		Description:    doc.Info.Description,
		ServerCount:    len(doc.Servers),
		ChannelCount:   len(doc.Channels),
		OperationCount: len(doc.Operations),
		ComponentCount: doc.Components.Len(),
		Format:         string(result.SourceFormat),
	}
	for _, ch := range doc.Channels {
		output.MessageCount += len(ch.Messages)
	}

	output.Servers = makeSlice[parseSummaryServer](len(doc.Servers))
	for _, name := range doc.ServerNames() {
		s := doc.Servers[name]
		output.Servers = append(output.Servers, parseSummaryServer{
			Name:        name,
			URL:         s.URL(),
			ResolvedURL: s.ResolvedURL(),
			Protocol:    s.Protocol,
		})
	}
	output.Tags = makeSlice[string](len(doc.Tags) + len(doc.Info.Tags))
	for _, tag := range doc.Info.Tags {
		output.Tags = append(output.Tags, tag.Name)
	}
	for _, tag := range doc.Tags {
		output.Tags = append(output.Tags, tag.Name)
	}

	if input.Full {
		format := result.SourceFormat
		if format != parser.SourceFormatJSON {
			format = parser.SourceFormatYAML
		}
		data, err := parser.Render(doc, format)
		if err != nil {
			return errResult(err), parseOutput{}, nil
		}
		output.FullDocument = string(data)
	}

	return nil, output, nil
}
