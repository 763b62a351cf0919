package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/logger"
)

// toolJSON encodes v as the text content of a successful result.
func toolJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}

// toolError encodes a tagged error as the text content of a failed result.
func toolError(e *domain.Error) *mcp.CallToolResult {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		data = []byte(fmt.Sprintf(`{"type":%q,"message":%q}`, domain.KindInternal, e.Error()))
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}

// toolHandler adapts a typed operation to an MCP tool handler.
//
// Arguments are shape-checked first; failures are reported with the invalid
// kind and never reach run. Errors from run are reported as tool errors so the
// client sees the tagged payload, and a panic becomes an InternalError.
func toolHandler[In any](
	name string,
	invalid domain.ErrorKind,
	run func(context.Context, In) (any, error),
) mcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in In) (result *mcp.CallToolResult, _ any, err error) {
		start := time.Now()
		outcome := resultOK
		defer func() {
			observeToolCall(name, outcome, time.Since(start))
		}()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("tool panicked", "tool", name, "panic", fmt.Sprint(r))
				outcome = string(domain.KindInternal)
				result = toolError(&domain.Error{Kind: domain.KindInternal, Message: fmt.Sprintf("internal error: %v", r)})
				err = nil
			}
		}()

		if issues := inputIssues(in); len(issues) > 0 {
			e := domain.NewValidation(issues...)
			e.Kind = invalid
			outcome = string(invalid)
			logger.Debug("tool arguments rejected", "tool", name, "issues", issues)
			return toolError(e), nil, nil
		}

		out, runErr := run(ctx, in)
		if runErr != nil {
			e := asToolError(runErr)
			outcome = string(e.Kind)
			return toolError(e), nil, nil
		}

		result, err = toolJSON(out)
		if err != nil {
			outcome = string(domain.KindInternal)
			return toolError(&domain.Error{Kind: domain.KindInternal, Message: err.Error()}), nil, nil
		}
		return result, nil, nil
	}
}

// asToolError returns the tagged error in err's chain or wraps err as an InternalError.
func asToolError(err error) *domain.Error {
	if e, ok := domain.AsError(err); ok {
		return e
	}
	logger.Error("tool failed", "error", err)
	return &domain.Error{Kind: domain.KindInternal, Message: err.Error()}
}
