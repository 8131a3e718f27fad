package bootstrap_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"fitsynth-backend/internal/bootstrap"
	"fitsynth-backend/internal/plans"
	"fitsynth-backend/internal/shared/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		StoreDriver:     "memory",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		LLMProvider:     "none",
		RetentionMax:    1000,
		RateLimitRPS:    2,
		RateLimitBurst:  20,
	}
}

const profile = `{"age":30,"height":175,"weight":74,"sex":"male","activity":"moderate","goal":"fat_loss","sessionMinutes":45,"daysPerWeek":3}`

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "tester")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestBuildServesPlanLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := bootstrap.Build(testConfig(t))
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	health := serve(app.Router, http.MethodGet, "/api/v1/health", "")
	if health.Code != http.StatusOK || !strings.Contains(health.Body.String(), `"llmConfigured":false`) || !strings.Contains(health.Body.String(), `"model":null`) {
		t.Fatalf("unexpected health: %d %s", health.Code, health.Body.String())
	}

	created := serve(app.Router, http.MethodPost, "/api/v1/plans", profile)
	if created.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", created.Code, created.Body.String())
	}
	var p plans.PlanResponse
	if err := json.Unmarshal(created.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if created.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}

	latest := serve(app.Router, http.MethodGet, "/api/v1/plans/latest", "")
	if latest.Code != http.StatusOK || !strings.Contains(latest.Body.String(), p.ID) {
		t.Fatalf("unexpected latest: %d", latest.Code)
	}

	chat := serve(app.Router, http.MethodPost, "/api/v1/chat", `{"message":"any diet tips?"}`)
	if chat.Code != http.StatusOK || !strings.Contains(chat.Body.String(), "offline mode") {
		t.Fatalf("unexpected chat: %d %s", chat.Code, chat.Body.String())
	}

	exp := serve(app.Router, http.MethodPost, "/api/v1/plans/"+p.ID+"/export", "")
	if exp.Code != http.StatusOK {
		t.Fatalf("export failed: %d %s", exp.Code, exp.Body.String())
	}
	dl := serve(app.Router, http.MethodGet, "/api/v1/plans/"+p.ID+"/export/download", "")
	if dl.Code != http.StatusOK || !bytes.HasPrefix(dl.Body.Bytes(), []byte("PK")) {
		t.Fatalf("download failed: %d", dl.Code)
	}

	metrics := serve(app.Router, http.MethodGet, "/metrics", "")
	if !strings.Contains(metrics.Body.String(), "plan_generated_total") {
		t.Fatalf("metrics missing plan counter: %s", metrics.Body.String())
	}

	if missing := serve(app.Router, http.MethodGet, "/api/v1/nope", ""); missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", missing.Code)
	}
}

func TestBuildRateLimitsGeneration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 2
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}

	for i := 0; i < 2; i++ {
		if resp := serve(app.Router, http.MethodPost, "/api/v1/plans/preview", profile); resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.Code)
		}
	}
	limited := serve(app.Router, http.MethodPost, "/api/v1/plans/preview", profile)
	if limited.Code != http.StatusTooManyRequests || limited.Header().Get("Retry-After") == "" {
		t.Fatalf("expected 429 with Retry-After, got %d", limited.Code)
	}
	// Reads use the larger default budget.
	if resp := serve(app.Router, http.MethodGet, "/api/v1/exercises", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected reads to pass, got %d", resp.Code)
	}
}

func TestBuildWithSQLite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	cfg.StoreDriver = "sqlite"
	cfg.SQLitePath = filepath.Join(t.TempDir(), "plans.db")

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	if _, ok := app.PlansRepo.(*plans.SQLiteRepo); !ok {
		t.Fatalf("expected SQLiteRepo, got %T", app.PlansRepo)
	}

	if resp := serve(app.Router, http.MethodPost, "/api/v1/plans", profile); resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	health := serve(app.Router, http.MethodGet, "/api/v1/health", "")
	if !strings.Contains(health.Body.String(), `"store":"sqlite"`) || !strings.Contains(health.Body.String(), `"database":"ok"`) {
		t.Fatalf("unexpected health: %s", health.Body.String())
	}
}

func TestBuildRequiresMistralKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLMProvider = "mistral"
	if _, err := bootstrap.Build(cfg); err == nil {
		t.Fatalf("expected error without LLM_API_KEY")
	}
}
