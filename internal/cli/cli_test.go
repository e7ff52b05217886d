package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Log.Level = "error"
	return cfg
}

func newTestApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNewApp_Memory(t *testing.T) {
	app := newTestApp(t, testConfig())

	assert.Equal(t, []string{SampleName}, app.Manager.Names())
	assert.NoError(t, app.HealthCheck(context.Background()))

	def, err := app.Manager.Describe(context.Background(), SampleName)
	require.NoError(t, err)
	assert.Len(t, def.States, 3)
	assert.Equal(t, "q0", def.InitialName)
}

func TestNewApp_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig()
	cfg.History.Backend = "redis"
	cfg.History.RedisAddr = mr.Addr()
	app := newTestApp(t, cfg)

	ctx := context.Background()
	require.NoError(t, app.HealthCheck(ctx))

	_, _, err := app.Manager.Run(ctx, SampleName, "ab")
	require.NoError(t, err)
	assert.True(t, mr.Exists("automata:history:"+SampleName))

	mr.Close()
	assert.Error(t, app.HealthCheck(ctx))
}

func TestNewApp_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig()
	cfg.History.Backend = "redis"
	cfg.History.RedisAddr = addr

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error connecting to redis")
}

func TestNewApp_UnknownBackend(t *testing.T) {
	cfg := testConfig()
	cfg.History.Backend = "etcd"

	_, err := NewApp(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown history backend")
}

func TestNewApp_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "automata.log")

	cfg := testConfig()
	cfg.Log.Level = "debug"
	cfg.Log.File = path

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, app.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "application ready")
}

func TestNewApp_LimitsApplied(t *testing.T) {
	cfg := testConfig()
	cfg.Limits.MaxStates = 2

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestRunBatch(t *testing.T) {
	app := newTestApp(t, testConfig())
	ctx := context.Background()

	var out bytes.Buffer
	rejected, err := RunBatch(ctx, app, &out, []string{"abc", "ab"}, BatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, rejected)

	s := out.String()
	assert.Contains(t, s, `Input: "abc"`)
	assert.Contains(t, s, "REJECTED")
	assert.Contains(t, s, "ACCEPTED")
	assert.Contains(t, s, ">>> 1/2 accepted")

	history, err := app.Manager.History(ctx, SampleName, 0)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestRunBatch_Strict(t *testing.T) {
	app := newTestApp(t, testConfig())

	var out bytes.Buffer
	_, err := RunBatch(context.Background(), app, &out, []string{"ab", "abcab"}, BatchOptions{Strict: true})
	assert.NoError(t, err)

	_, err = RunBatch(context.Background(), app, &out, []string{"ab", "xyz"}, BatchOptions{Strict: true})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestRunBatch_JSON(t *testing.T) {
	app := newTestApp(t, testConfig())

	var out bytes.Buffer
	_, err := RunBatch(context.Background(), app, &out, []string{"ab", "xyz"}, BatchOptions{JSON: true})
	require.NoError(t, err)

	var records []domain.RunRecord
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var rec domain.RunRecord
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		records = append(records, rec)
	}
	require.Len(t, records, 2)
	assert.True(t, records[0].Accepted)
	assert.Equal(t, domain.HaltUnknownSymbol, records[1].Halt)
	assert.Equal(t, SampleName, records[1].Automaton)
}

func TestRunBatch_UnknownAutomaton(t *testing.T) {
	app := newTestApp(t, testConfig())

	_, err := RunBatch(context.Background(), app, &bytes.Buffer{}, []string{"ab"}, BatchOptions{Automaton: "missing"})
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
}

func TestRunInteractive(t *testing.T) {
	app := newTestApp(t, testConfig())

	in := strings.NewReader("1\nabcab\n3\n4\n")
	var out bytes.Buffer
	err := RunInteractive(context.Background(), app, in, &out, InteractiveOptions{
		AutoTests: []string{"abc", "xyz"},
		NoBanner:  true,
	})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "✓ Sample FSM created")
	assert.Contains(t, s, "=== FSM Visualization ===")
	assert.Contains(t, s, "=== Automatic Testing ===")
	assert.Contains(t, s, "Error: 'x' not in alphabet")
	assert.Contains(t, s, "Read 'b': q1 -> q2")
	assert.Contains(t, s, "✓ FSM reset to initial state.")
	assert.Contains(t, s, "Exiting simulator. Goodbye!")

	history, err := app.Manager.History(context.Background(), SampleName, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "abcab", history[0].Input)
	assert.True(t, history[0].Accepted)
}

func TestRunInteractive_EndOfInput(t *testing.T) {
	app := newTestApp(t, testConfig())

	var out bytes.Buffer
	err := RunInteractive(context.Background(), app, strings.NewReader(""), &out, InteractiveOptions{NoBanner: true})
	assert.NoError(t, err)
}

func TestVisualize(t *testing.T) {
	app := newTestApp(t, testConfig())

	var out bytes.Buffer
	require.NoError(t, Visualize(context.Background(), app, &out, VisualizeOptions{}))
	assert.Contains(t, out.String(), "States: q0, q1, q2")
	assert.Contains(t, out.String(), "Accept States: q2")
	assert.Contains(t, out.String(), "  q2 --c--> q0")

	err := Visualize(context.Background(), app, &out, VisualizeOptions{Automaton: "missing"})
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
}

func TestGraph(t *testing.T) {
	app := newTestApp(t, testConfig())

	var plain bytes.Buffer
	require.NoError(t, Graph(context.Background(), app, &plain, GraphOptions{}))
	assert.True(t, strings.HasPrefix(plain.String(), "graph LR"))
	assert.NotContains(t, plain.String(), "classDef")

	input := "ab"
	var traced bytes.Buffer
	require.NoError(t, Graph(context.Background(), app, &traced, GraphOptions{Trace: &input}))
	assert.Contains(t, traced.String(), "class s2 accepted;")

	history, err := app.Manager.History(context.Background(), SampleName, 0)
	require.NoError(t, err)
	assert.Empty(t, history, "overlay runs are not recorded")
}

func TestServe(t *testing.T) {
	app := newTestApp(t, testConfig())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, app, NewHTTPServer(app, ln.Addr().String()), ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeMCP_UnknownTransport(t *testing.T) {
	app := newTestApp(t, testConfig())
	err := ServeMCP(context.Background(), app, "websocket", 0)
	assert.ErrorContains(t, err, "unknown transport")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, handleExecutionError(context.Canceled))
	assert.NoError(t, handleExecutionError(nil))
	assert.Error(t, handleExecutionError(ErrRejected))
}

func TestValidate(t *testing.T) {
	app := newTestApp(t, testConfig())
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, Validate(ctx, app, &out, ""))
	assert.Contains(t, out.String(), "✓ Automaton 'sample' is valid.")

	require.NoError(t, app.Manager.Create(ctx, "empty"))
	err := Validate(ctx, app, &out, "empty")
	assert.ErrorContains(t, err, "No initial state")
}

func TestShutdownCause(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	assert.Empty(t, shutdownCause(ctx))
	cancel()
	assert.Equal(t, "context canceled", shutdownCause(ctx))

	sc := NewSignalContext(context.Background())
	sc.Cancel()
	<-sc.Done()
	assert.Nil(t, sc.Signal())
	assert.Equal(t, "context canceled", shutdownCause(sc))
}
