package integration_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func serverBinary(t *testing.T) string {
	t.Helper()
	for _, path := range []string{"./bin/repairdesk", "../../bin/repairdesk"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Skip("Server binary not found. Run 'go build -o bin/repairdesk ./cmd/repairdesk' first.")
	return ""
}

func stdioCommand(ctx context.Context, t *testing.T) *exec.Cmd {
	t.Helper()
	cmd := exec.CommandContext(ctx, serverBinary(t), "mcp")
	cmd.Env = append(os.Environ(),
		"REPAIRDESK_DB_PATH=:memory:",
		"REPAIRDESK_STORE_PATH="+filepath.Join(t.TempDir(), "repair_history.json"),
		"REPAIRDESK_WATCH=false",
	)
	return cmd
}

// TestStdioProtocolCompliance drives the stdio server with the SDK client.
func TestStdioProtocolCompliance(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: stdioCommand(ctx, t)}, nil)
	require.NoError(t, err, "Failed to connect to server")
	defer session.Close()

	t.Run("ServerInfo", func(t *testing.T) {
		initResult := session.InitializeResult()
		require.NotNil(t, initResult)
		require.NotNil(t, initResult.ServerInfo)
		require.Equal(t, "repairdesk", initResult.ServerInfo.Name)
	})

	t.Run("ListTools", func(t *testing.T) {
		tools, err := session.ListTools(ctx, nil)
		require.NoError(t, err)
		require.Len(t, tools.Tools, 8)
	})

	t.Run("Catalog", func(t *testing.T) {
		result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "list_work_catalog",
			Arguments: map[string]any{},
		})
		require.NoError(t, err)
		require.False(t, result.IsError)

		text, ok := result.Content[0].(*sdkmcp.TextContent)
		require.True(t, ok)
		var items []map[string]any
		require.NoError(t, json.Unmarshal([]byte(text.Text), &items))
		require.NotEmpty(t, items)
	})

	t.Run("EmptyHistory", func(t *testing.T) {
		result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "search_similar_cases",
			Arguments: map[string]any{"query": "ナット"},
		})
		require.NoError(t, err)
		require.True(t, result.IsError)
		require.Contains(t, result.Content[0].(*sdkmcp.TextContent).Text, "STORE_NOT_FOUND")
	})
}

// TestStdioProtocol_StdoutHygiene checks that the first bytes on stdout are
// a JSON-RPC message, so logs never leak onto the protocol stream.
func TestStdioProtocol_StdoutHygiene(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := stdioCommand(ctx, t)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		stdin.Close()
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		t.Logf("stderr: %s", stderr.String())
	})

	initReq := `{"jsonrpc":"2.0","method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}},"id":1}`
	_, err = stdin.Write([]byte(initReq + "\n"))
	require.NoError(t, err)

	lineCh := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(stdout).ReadString('\n')
		lineCh <- line
	}()

	select {
	case line := <-lineCh:
		require.NotEmpty(t, line, "server produced no stdout output")
		var msg map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &msg), "stdout line is not JSON: %q", line)
		require.Equal(t, "2.0", msg["jsonrpc"])
	case <-ctx.Done():
		t.Fatal("timeout waiting for initialize response")
	}
}
