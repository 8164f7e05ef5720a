package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts registers all prompt handlers with the MCP server.
func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "analyze",
		Description: "Research a topic across the knowledge base and summarise the findings",
		Arguments: []*mcp.PromptArgument{{
			Name:        "topic",
			Description: "The topic or question to research",
			Required:    true,
		}},
	}, s.handleAnalyzePrompt)
}

// handleAnalyzePrompt renders the analyze prompt for a topic.
func (s *Server) handleAnalyzePrompt(
	_ context.Context,
	req *mcp.GetPromptRequest,
) (*mcp.GetPromptResult, error) {
	topic := req.Params.Arguments["topic"]
	if topic == "" {
		return nil, fmt.Errorf("analyze prompt requires a topic argument")
	}

	text := fmt.Sprintf(`Research the following topic using the local knowledge base: %s

Use the query tool to retrieve relevant passages, rephrasing the topic
into several focused questions if needed. Base your answer only on the
retrieved passages and cite the source path of every claim. If the
knowledge base has no relevant material, say so instead of guessing.`, topic)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Analyze %q against the knowledge base", topic),
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: text},
		}},
	}, nil
}
