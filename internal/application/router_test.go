package application

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/psds-microservice/blog-platform/internal/config"
	"github.com/psds-microservice/blog-platform/internal/strapi"
	"github.com/psds-microservice/blog-platform/pkg/constants"
)

func testConfig(env config.Environment) *config.Config {
	cfg := config.GetDefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Runtime = config.Resolve(env)
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) (*Application, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	app, err := NewApplicationWithConfig(cfg, zap.New(core), "test")
	require.NoError(t, err)
	return app, logs
}

func serve(app *Application, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	app.GetRouter().ServeHTTP(w, req)
	return w
}

func TestNewApplicationWithConfig_NilConfig(t *testing.T) {
	_, err := NewApplicationWithConfig(nil, zap.NewNop(), "test")
	assert.Error(t, err)
}

func TestRouter_PublicConfigHidesToken(t *testing.T) {
	app, _ := newTestApp(t, testConfig(config.Environment{
		config.EnvStrapiAPIURL:   "https://cms.example.com",
		config.EnvStrapiAPIToken: "tok123",
	}))

	w := serve(app, http.MethodGet, "/api/v1/config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"upstreamBaseUrl":"https://cms.example.com"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "tok123")
	assert.NotEmpty(t, w.Header().Get(constants.HeaderRequestID))
}

func TestRouter_Routes(t *testing.T) {
	app, _ := newTestApp(t, testConfig(nil))

	tests := []struct {
		path       string
		wantStatus int
	}{
		{path: "/health", wantStatus: http.StatusOK},
		{path: "/ready", wantStatus: http.StatusOK},
		{path: "/api/v1/head", wantStatus: http.StatusOK},
		{path: "/openapi.json", wantStatus: http.StatusOK},
		{path: "/does-not-exist", wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := serve(app, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRouter_OpenAPISpec(t *testing.T) {
	app, _ := newTestApp(t, testConfig(nil))

	w := serve(app, http.MethodGet, "/openapi.json", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var spec map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &spec))
	paths, ok := spec["paths"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, paths, "/api/v1/config")
	assert.Contains(t, paths, "/api/v1/head")
}

func TestRouter_RequestCheckMode(t *testing.T) {
	app, logs := newTestApp(t, testConfig(nil))

	for i := 0; i < 3; i++ {
		w := serve(app, http.MethodGet, "/api/v1/head", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 3, logs.FilterMessage(strapi.MissingConfigMessage).Len())
}

func TestRouter_StartupCheckModeSkipsPerRequest(t *testing.T) {
	cfg := testConfig(nil)
	cfg.Strapi.CheckMode = config.CheckModeStartup
	app, logs := newTestApp(t, cfg)

	w := serve(app, http.MethodGet, "/api/v1/head", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, logs.FilterMessage(strapi.MissingConfigMessage).Len())
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig(nil)
	cfg.RateLimit.RequestsPerSec = 0.001
	cfg.RateLimit.Burst = 1
	app, _ := newTestApp(t, cfg)

	assert.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/api/v1/head", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(app, http.MethodGet, "/api/v1/head", nil).Code)
	// health вне /api/v1 и не лимитируется
	assert.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/health", nil).Code)
}

func TestRouter_RateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	cfg := testConfig(nil)
	cfg.RateLimit.RequestsPerSec = 0.001
	cfg.RateLimit.Burst = 1
	app, _ := newTestApp(t, cfg)

	allowed := 0
	for i := 0; i < 100; i++ {
		w := serve(app, http.MethodGet, "/api/v1/config", http.Header{
			"X-Forwarded-For": {fmt.Sprintf("198.51.100.%d", i)},
		})
		if w.Code == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed)
}

func TestNewApplicationWithConfig_InvalidTrustedProxy(t *testing.T) {
	cfg := testConfig(nil)
	cfg.RateLimit.TrustedProxies = []string{"not-an-address"}

	_, err := NewApplicationWithConfig(cfg, zap.NewNop(), "test")
	assert.Error(t, err)
}

func TestRouter_ConcurrentConfigReads(t *testing.T) {
	cfg := testConfig(config.Environment{
		config.EnvStrapiAPIURL:   "https://cms.example.com",
		config.EnvStrapiAPIToken: "tok123",
	})
	cfg.RateLimit.RequestsPerSec = 0
	app, _ := newTestApp(t, cfg)

	const workers = 16
	var wg sync.WaitGroup
	bodies := make(chan string, workers*10)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				w := serve(app, http.MethodGet, "/api/v1/config", nil)
				bodies <- w.Body.String()
			}
		}()
	}
	wg.Wait()
	close(bodies)

	for body := range bodies {
		assert.JSONEq(t, `{"upstreamBaseUrl":"https://cms.example.com"}`, body)
	}
}

func TestRouter_RateLimitDisabled(t *testing.T) {
	cfg := testConfig(nil)
	cfg.RateLimit.RequestsPerSec = 0
	app, _ := newTestApp(t, cfg)

	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/api/v1/head", nil).Code)
	}
}

func TestRouter_CORS(t *testing.T) {
	cfg := testConfig(nil)
	cfg.CORS.AllowedOrigins = []string{"https://blog.example.com"}
	app, _ := newTestApp(t, cfg)

	w := serve(app, http.MethodGet, "/api/v1/config", http.Header{"Origin": {"https://blog.example.com"}})
	assert.Equal(t, "https://blog.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(app, http.MethodGet, "/api/v1/config", http.Header{"Origin": {"https://other.example.com"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestApplication_RunStartupCheckAndShutdown(t *testing.T) {
	cfg := testConfig(nil)
	cfg.Port = freePort(t)
	cfg.Strapi.CheckMode = config.CheckModeStartup
	app, logs := newTestApp(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	url := "http://" + cfg.Addr() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.Equal(t, 1, logs.FilterMessage(strapi.MissingConfigMessage).Len())
	assert.Equal(t, 1, logs.FilterMessage("Server stopped").Len())
}

func TestApplication_RunListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	cfg := testConfig(nil)
	cfg.Port = l.Addr().(*net.TCPAddr).Port
	app, _ := newTestApp(t, cfg)

	err = app.Run(context.Background())
	assert.Error(t, err)
}
