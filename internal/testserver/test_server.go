// Package testserver starts a fully wired repairdesk HTTP server for tests.
package testserver

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/repairdesk/internal/config"
	"github.com/rpggio/repairdesk/internal/domain/activity"
	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/rpggio/repairdesk/internal/domain/repaircase"
	"github.com/rpggio/repairdesk/internal/jsonstore"
	"github.com/rpggio/repairdesk/internal/mcp"
	"github.com/rpggio/repairdesk/internal/sqlite"
	"github.com/rpggio/repairdesk/internal/transport"
)

type TestServer struct {
	Server    *httptest.Server
	DB        *sqlite.DB
	Store     record.Store
	Cases     *repaircase.Service
	StorePath string
}

// New starts a server on the JSON file backend.
func New(t *testing.T) *TestServer {
	return NewWithBackend(t, config.BackendJSON)
}

// NewWithBackend starts a server whose rows live in backend. The activity log
// always uses an in-memory SQLite database.
func NewWithBackend(t *testing.T, backend string) *TestServer {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)

	ts := &TestServer{DB: db}
	switch backend {
	case config.BackendSQLite:
		ts.Store = sqlite.NewRecordStore(db)
	default:
		ts.StorePath = filepath.Join(t.TempDir(), "repair_history.json")
		ts.Store = jsonstore.New(ts.StorePath)
	}

	activityRepo := sqlite.NewActivityRepository(db)
	activitySvc := activity.NewService(activityRepo, nil)
	ts.Cases = repaircase.NewService(ts.Store, activityRepo, nil)

	mcpServer := mcp.NewServer(mcp.Config{Cases: ts.Cases, Activity: activitySvc})
	ts.Server = httptest.NewServer(transport.NewServer(transport.Config{
		Cases:    ts.Cases,
		Activity: activitySvc,
		MCP:      mcp.NewHTTPHandler(mcpServer),
	}))

	t.Cleanup(func() {
		ts.Server.Close()
		_ = db.Close()
	})

	return ts
}

// URL returns the absolute URL of path on the test server.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
