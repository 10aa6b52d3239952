package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/iskwet/internal/config"
	"github.com/kailas-cloud/iskwet/internal/domain/word"
	"github.com/kailas-cloud/iskwet/internal/metrics"
	"github.com/kailas-cloud/iskwet/internal/repository/dictionary"
)

func testApp() *cli.App {
	app := newApp()
	app.Writer = io.Discard
	app.ErrWriter = io.Discard
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ec cli.ExitCoder
	if !errors.As(err, &ec) {
		t.Fatalf("expected cli.ExitCoder, got %T: %v", err, err)
	}
	return ec.ExitCode()
}

func TestApp_RequiresOneArgument(t *testing.T) {
	for _, args := range [][]string{
		{"iskwet"},
		{"iskwet", "a.json", "b.json"},
	} {
		err := testApp().Run(args)
		if err == nil {
			t.Fatalf("Run(%v): expected error", args)
		}
		if code := exitCode(t, err); code != ExitCodeUsage {
			t.Errorf("Run(%v): exit code %d, want %d", args, code, ExitCodeUsage)
		}
	}
}

func TestApp_UnreadableDictionary(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("ENV", "prod")

	err := testApp().Run([]string{"iskwet", filepath.Join(t.TempDir(), "missing.json")})
	if err == nil {
		t.Fatal("expected error")
	}
	if code := exitCode(t, err); code != ExitCodeStartup {
		t.Errorf("exit code %d, want %d", code, ExitCodeStartup)
	}
}

func TestApp_MalformedDictionary(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("ENV", "prod")

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"words": [`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	err := testApp().Run([]string{"iskwet", path})
	if err == nil {
		t.Fatal("expected error")
	}
	if code := exitCode(t, err); code != ExitCodeStartup {
		t.Errorf("exit code %d, want %d", code, ExitCodeStartup)
	}
}

func TestApp_Version(t *testing.T) {
	if err := testApp().Run([]string{"iskwet", "--version"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func defaultConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Parse(nil)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func TestNewHandler(t *testing.T) {
	store := dictionary.New([]word.Word{
		{UUID: "1", Definitions: map[string][]string{"en": {"cat"}}},
	})
	h := newHandler(defaultConfig(t), store, zap.NewNop())
	hits := testutil.ToFloat64(metrics.LookupsTotal.WithLabelValues("get", "hit"))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/search/1", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get(chiMiddleware.RequestIDHeader) == "" {
		t.Error("expected request id header")
	}
	if got := testutil.ToFloat64(metrics.LookupsTotal.WithLabelValues("get", "hit")) - hits; got != 1 {
		t.Errorf("lookup counter delta = %v, want 1", got)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Errorf("expected /metrics 200, got %d", rr.Code)
	}
}

func TestWideEventMiddleware_LogsRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	h := chiMiddleware.RequestID(wideEventMiddleware(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}),
	))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/search/x", http.NoBody))

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 http_request entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusNotFound) {
		t.Errorf("status field = %v", fields["status"])
	}
	if fields["path"] != "/search/x" {
		t.Errorf("path field = %v", fields["path"])
	}
	if fields["request_id"] == "" {
		t.Error("expected request_id field")
	}
}

func TestJSONRecoverer(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)

	h := jsonRecoverer(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["code"] != "internal_error" {
		t.Errorf("code = %q", body["code"])
	}
	if logs.Len() != 1 {
		t.Errorf("expected panic to be logged once, got %d", logs.Len())
	}
}

func TestServe_GracefulShutdown(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.HTTP.Host = "127.0.0.1"
	cfg.HTTP.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, cfg, http.NotFoundHandler(), zap.NewNop())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServe_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	cfg := defaultConfig(t)
	cfg.HTTP.Host = "127.0.0.1"
	cfg.HTTP.Port = ln.Addr().(*net.TCPAddr).Port

	done := make(chan error, 1)
	go func() {
		done <- serve(context.Background(), cfg, http.NotFoundHandler(), zap.NewNop())
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected listen error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not report the listen error")
	}
}
