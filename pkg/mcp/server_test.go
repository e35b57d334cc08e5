package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/mcp"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/report"
)

func connect(t *testing.T, srv *mcp.Server) *mcpsdk.ClientSession {
	t.Helper()

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	serverDone := make(chan error, 1)

	go func() {
		serverDone <- srv.RunWithTransport(ctx, serverTransport)
	}()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()

		cancel()
		<-serverDone
	})

	return session
}

func writePair(t *testing.T, style, sibling string) string {
	t.Helper()

	dir := t.TempDir()
	stylePath := filepath.Join(dir, "card.style.ts")

	require.NoError(t, os.WriteFile(stylePath, []byte(style), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "card.ts"), []byte(sibling), 0o600))

	return stylePath
}

func callCheck(t *testing.T, session *mcpsdk.ClientSession, args map[string]any) *mcpsdk.CallToolResult {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      mcp.ToolNameCheck,
		Arguments: args,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	return result
}

func decodeEntry(t *testing.T, result *mcpsdk.CallToolResult) report.Entry {
	t.Helper()

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)

	var entry report.Entry

	require.NoError(t, json.Unmarshal([]byte(text.Text), &entry))

	return entry
}

func TestServer_ListToolNames(t *testing.T) {
	t.Parallel()

	srv := mcp.NewServer(mcp.ServerDeps{})
	assert.Equal(t, []string{"check_unused_styles"}, srv.ListToolNames())
}

func TestServer_ToolsList(t *testing.T) {
	t.Parallel()

	session := connect(t, mcp.NewServer(mcp.ServerDeps{}))

	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 1)

	tool := tools.Tools[0]
	assert.Equal(t, mcp.ToolNameCheck, tool.Name)
	assert.NotEmpty(t, tool.Description)
	assert.NotNil(t, tool.InputSchema)
}

func TestServer_CheckFromDisk(t *testing.T) {
	t.Parallel()

	stylePath := writePair(t, "bg: {}\nfg: {}\n", "styles.bg")
	session := connect(t, mcp.NewServer(mcp.ServerDeps{}))

	result := callCheck(t, session, map[string]any{"path": stylePath})
	assert.False(t, result.IsError)

	entry := decodeEntry(t, result)
	assert.Equal(t, report.StatusUnused, entry.Status)
	assert.Equal(t, []string{"fg"}, entry.Unused)
	assert.Equal(t, filepath.ToSlash(filepath.Join(filepath.Dir(stylePath), "card.ts")), entry.Sibling)
}

func TestServer_CheckRelativePath(t *testing.T) {
	stylePath := writePair(t, "bg: {}\nfg: {}\n", "styles.bg")
	t.Chdir(filepath.Dir(stylePath))

	session := connect(t, mcp.NewServer(mcp.ServerDeps{}))

	result := callCheck(t, session, map[string]any{"path": "card.style.ts"})
	assert.False(t, result.IsError)

	entry := decodeEntry(t, result)
	assert.Equal(t, report.StatusUnused, entry.Status)
	assert.Equal(t, []string{"fg"}, entry.Unused)
	assert.True(t, filepath.IsAbs(filepath.FromSlash(entry.Path)), entry.Path)
}

func TestServer_CheckInlineText(t *testing.T) {
	t.Parallel()

	stylePath := writePair(t, "bg: {}\n", "styles.bg")
	session := connect(t, mcp.NewServer(mcp.ServerDeps{}))

	result := callCheck(t, session, map[string]any{
		"path": stylePath,
		"text": "bg: {}\ndraft: {}\n",
	})
	assert.False(t, result.IsError)
	assert.Equal(t, []string{"draft"}, decodeEntry(t, result).Unused)
}

func TestServer_CheckSkipped(t *testing.T) {
	t.Parallel()

	session := connect(t, mcp.NewServer(mcp.ServerDeps{}))

	result := callCheck(t, session, map[string]any{"path": "/src/main.go"})
	assert.False(t, result.IsError)

	entry := decodeEntry(t, result)
	assert.Equal(t, report.StatusSkipped, entry.Status)
	assert.Equal(t, "not_style_file", entry.SkipReason)
}

func TestServer_CheckErrors(t *testing.T) {
	t.Parallel()

	session := connect(t, mcp.NewServer(mcp.ServerDeps{}))

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"empty path", map[string]any{"path": ""}, "path parameter is required"},
		{"missing directory", map[string]any{"path": "/no/such/dir/a.style.ts"}, "read directory"},
	}

	for _, tt := range tests {
		result := callCheck(t, session, tt.args)
		assert.True(t, result.IsError, tt.name)

		text, ok := result.Content[0].(*mcpsdk.TextContent)
		require.True(t, ok)
		assert.Contains(t, text.Text, tt.want, tt.name)
	}
}

func TestServer_TraceIDInResult(t *testing.T) {
	t.Parallel()

	tracer := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample())).Tracer("test")
	session := connect(t, mcp.NewServer(mcp.ServerDeps{Tracer: tracer}))

	result := callCheck(t, session, map[string]any{"path": "/src/main.go"})
	require.Len(t, result.Content, 2)

	text, ok := result.Content[1].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "trace_id=")
}
