package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gesturelabs/gestris/internal/api"
	"github.com/gesturelabs/gestris/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "gestris-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/gestris")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		HubManager:     app.HubManager,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			app.GameController.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type pieceResponse struct {
	Type     string `json:"type"`
	Color    string `json:"color"`
	Rotation int    `json:"rotation"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

type gameStateResponse struct {
	SessionID string         `json:"session_id"`
	Cols      int            `json:"cols"`
	Rows      int            `json:"rows"`
	Cells     [][]string     `json:"cells"`
	Score     int            `json:"score"`
	HighScore int            `json:"high_score"`
	GameOver  bool           `json:"game_over"`
	Paused    bool           `json:"paused"`
	Current   *pieceResponse `json:"current"`
	NextPiece string         `json:"next_piece"`
}

type sessionListResponse struct {
	Sessions []struct {
		SessionID string `json:"session_id"`
		Score     int    `json:"score"`
	} `json:"sessions"`
}

type snapshotResponse struct {
	SessionID string `json:"session_id"`
	Cols      int    `json:"cols"`
	Rows      int    `json:"rows"`
	Score     int    `json:"score"`
	SavedAt   string `json:"saved_at"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_SessionLifecycle(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create a session with display dimensions
	output, err := cli.run("session", "create", "--width", "1080", "--height", "1920")
	require.NoError(t, err, "output: %s", output)

	var created gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	assert.NotEmpty(t, created.SessionID)
	assert.Equal(t, 10, created.Cols)
	assert.Equal(t, 17, created.Rows)
	assert.True(t, created.Paused)

	// It shows up in the list
	output, err = cli.run("session", "list")
	require.NoError(t, err, "output: %s", output)

	var list sessionListResponse
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, created.SessionID, list.Sessions[0].SessionID)

	// Start play
	output, err = cli.run("session", "start", created.SessionID)
	require.NoError(t, err, "output: %s", output)

	var started gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &started))
	assert.False(t, started.Paused)
	require.NotNil(t, started.Current)

	// Pause again so gravity can't interfere with later assertions
	output, err = cli.run("session", "pause", created.SessionID)
	require.NoError(t, err, "output: %s", output)

	var paused gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &paused))
	assert.True(t, paused.Paused)

	// Delete
	output, err = cli.run("session", "delete", created.SessionID)
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("session", "get", created.SessionID)
	require.Error(t, err)
	assert.Contains(t, output, "SESSION_NOT_FOUND")
}

func TestCLI_InputCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("session", "create")
	require.NoError(t, err, "output: %s", output)
	var created gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))

	output, err = cli.run("session", "start", created.SessionID)
	require.NoError(t, err, "output: %s", output)
	var started gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &started))
	require.NotNil(t, started.Current)

	// Rotate with a fist gesture
	output, err = cli.run("gesture", "fist", created.SessionID)
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("session", "get", created.SessionID)
	require.NoError(t, err, "output: %s", output)
	var afterFist gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &afterFist))
	require.NotNil(t, afterFist.Current)
	assert.Equal(t, 1, afterFist.Current.Rotation)

	// Hard drop with a two-finger gesture
	output, err = cli.run("gesture", "two-finger", created.SessionID)
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("session", "get", created.SessionID)
	require.NoError(t, err, "output: %s", output)
	var afterDrop gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &afterDrop))

	locked := 0
	for _, row := range afterDrop.Cells {
		for _, cell := range row {
			if cell != "" {
				locked++
			}
		}
	}
	assert.Equal(t, 4, locked)

	// Pointer steers a piece
	output, err = cli.run("pointer", created.SessionID, "0.9")
	require.NoError(t, err, "output: %s", output)
}

func TestCLI_SnapshotRestore(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("session", "create")
	require.NoError(t, err, "output: %s", output)
	var created gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))

	output, err = cli.run("session", "start", created.SessionID)
	require.NoError(t, err, "output: %s", output)
	output, err = cli.run("session", "pause", created.SessionID)
	require.NoError(t, err, "output: %s", output)
	var before gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &before))

	// Save a snapshot
	output, err = cli.run("session", "snapshot", created.SessionID)
	require.NoError(t, err, "output: %s", output)

	var snap snapshotResponse
	require.NoError(t, json.Unmarshal([]byte(output), &snap))
	assert.Equal(t, created.SessionID, snap.SessionID)
	assert.NotEmpty(t, snap.SavedAt)

	// Reset wipes the board, restore brings it back
	output, err = cli.run("session", "reset", created.SessionID)
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("session", "restore", created.SessionID)
	require.NoError(t, err, "output: %s", output)

	var restored gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &restored))
	assert.Equal(t, before.Cells, restored.Cells)
	assert.Equal(t, before.Score, restored.Score)
	assert.True(t, restored.Paused)
}

func TestCLI_RestoreWithoutSnapshot(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("session", "create")
	require.NoError(t, err, "output: %s", output)
	var created gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))

	output, err = cli.run("session", "restore", created.SessionID)
	require.Error(t, err)
	assert.Contains(t, output, "SNAPSHOT_NOT_FOUND")
}
