package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/report"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/runner"
)

// ToolNameCheck is the name of the style check tool.
const ToolNameCheck = "check_unused_styles"

// MaxTextInputBytes is the maximum allowed size for inline style text (1 MB).
const MaxTextInputBytes = 1 << 20

// Sentinel errors for tool input validation.
var (
	// ErrEmptyPath indicates the path parameter is empty.
	ErrEmptyPath = errors.New("path parameter is required and must not be empty")
	// ErrTextTooLarge indicates the text input exceeds the size limit.
	ErrTextTooLarge = errors.New("text input exceeds maximum size")
)

// CheckInput is the input schema for the check_unused_styles tool.
type CheckInput struct {
	Path string  `json:"path"           jsonschema:"path of the style file; its directory is searched for the sibling"`
	Text *string `json:"text,omitempty" jsonschema:"optional in-memory style file content used instead of the file on disk"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

func (s *Server) handleCheck(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input CheckInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateCheckInput(input)
	if err != nil {
		return errorResult(err)
	}

	path, err := runner.AbsPath(input.Path)
	if err != nil {
		return errorResult(err)
	}

	entry := s.runner.CheckOne(ctx, runner.Request{
		Path: path,
		Text: input.Text,
	})

	if entry.Status == report.StatusError {
		return errorResult(fmt.Errorf("check %s: %s", input.Path, entry.Error))
	}

	return jsonResult(entry)
}

func validateCheckInput(input CheckInput) error {
	if input.Path == "" {
		return ErrEmptyPath
	}

	if input.Text != nil && len(*input.Text) > MaxTextInputBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTextTooLarge, len(*input.Text), MaxTextInputBytes)
	}

	return nil
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}
