package functional_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/repairdesk/internal/search"
	"github.com/rpggio/repairdesk/internal/testserver"
)

// connectHTTP opens an MCP session against the server's /mcp endpoint.
func connectHTTP(t *testing.T, ts *testserver.TestServer) *sdkmcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: ts.URL("/mcp")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

// callTool calls a tool and returns its JSON text payload.
func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) json.RawMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if args == nil {
		args = map[string]any{}
	}
	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.False(t, result.IsError, "tool error: %s", text.Text)
	return json.RawMessage(text.Text)
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestFunctional_SavedOverHTTPFoundOverMCP(t *testing.T) {
	ts := testserver.New(t)

	resp := postJSON(t, ts.URL("/api/save-repair"), map[string]any{
		"date":          "2023.12.24",
		"customer_name": "中村",
		"model":         "Gibson ES-335",
		"symptoms":      "フレットの減りで音詰まり",
		"work_items": []map[string]any{
			{"name": "フレット交換", "price": 45000},
			{"name": "ナット交換", "price": 8000},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	session := connectHTTP(t, ts)

	raw := callTool(t, session, "search_similar_cases", map[string]any{"query": "フレット 音詰まり"})
	var result search.Result
	require.NoError(t, json.Unmarshal(raw, &result))
	require.Len(t, result.SimilarCases, 1)
	require.Equal(t, "Gibson ES-335", result.SimilarCases[0].Model)
	require.Equal(t, int64(53000), result.Estimate.Avg)

	raw = callTool(t, session, "recent_activity", nil)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "case_created", entries[0]["type"])
}

func TestFunctional_EstimateToolsAgree(t *testing.T) {
	ts := testserver.New(t)
	session := connectHTTP(t, ts)

	input := map[string]any{
		"instrumentType": "archtop",
		"specs": map[string]any{
			"paint":     "lacquer",
			"binding":   "none",
			"jointWork": "none",
		},
		"condition": map[string]any{
			"rustLevel":        1,
			"repairTraceLevel": 1,
			"isDirty":          true,
		},
		"selectedWorkItemIds": []string{"fret_dress"},
	}

	var viaMCP struct {
		TotalPrice int64 `json:"totalPrice"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, session, "calculate_estimate", input), &viaMCP))

	resp := postJSON(t, ts.URL("/api/estimate"), input)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var viaHTTP struct {
		TotalPrice int64 `json:"totalPrice"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&viaHTTP))

	// (8000 + 5000) * 1.5 + 1500
	require.Equal(t, int64(21000), viaMCP.TotalPrice)
	require.Equal(t, viaMCP.TotalPrice, viaHTTP.TotalPrice)
}

func TestFunctional_MarketRatesAndCatalog(t *testing.T) {
	ts := testserver.New(t)
	session := connectHTTP(t, ts)

	var catalog []map[string]any
	require.NoError(t, json.Unmarshal(callTool(t, session, "list_work_catalog", nil), &catalog))
	require.Len(t, catalog, 7)

	var menu []map[string]any
	require.NoError(t, json.Unmarshal(callTool(t, session, "market_rates", map[string]any{"query": ""}), &menu))
	require.Len(t, menu, 6)
}
