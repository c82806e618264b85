package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/terraincognita07/kalender/internal/db"
	"github.com/terraincognita07/kalender/internal/services"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	app     *fiber.App
	handler *Handler
	repos   *db.Repositories
	auth    *services.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.ErrorLevel)
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "kalender-api.db"), logger)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(database) })

	now := func() time.Time { return time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC) }
	repos := db.NewRepositories(database)
	auth := services.NewAuthService(repos.Owners)
	handler, err := NewHandler(Services{
		Periods:  services.NewPeriodService(repos.Intervals, repos.Settings, time.UTC, services.WithClock(now), services.WithLogger(logger)),
		Settings: services.NewSettingsService(repos.Settings),
		Auth:     auth,
	}, testSecretKey, logger)
	if err != nil {
		t.Fatalf("create handler: %v", err)
	}
	handler.now = now

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterRoutes(app, handler)
	return &testEnv{app: app, handler: handler, repos: repos, auth: auth}
}

func (env *testEnv) do(t *testing.T, method string, path string, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	decoded := map[string]any{}
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode %s %s response %q: %v", method, path, string(raw), err)
		}
	}
	return response.StatusCode, decoded
}

// setupOwner creates the owner through the API and returns a bearer token.
func (env *testEnv) setupOwner(t *testing.T, password string) string {
	t.Helper()

	status, body := env.do(t, http.MethodPost, "/api/auth/setup", "", fiber.Map{
		"password":         password,
		"confirm_password": password,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("expected setup status 201, got %d: %v", status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("expected token in setup response, got %v", body)
	}
	return token
}

func stringSlice(t *testing.T, value any) []string {
	t.Helper()

	items, ok := value.([]any)
	if !ok {
		t.Fatalf("expected JSON array, got %T (%v)", value, value)
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		text, ok := item.(string)
		if !ok {
			t.Fatalf("expected string item, got %T", item)
		}
		result = append(result, text)
	}
	return result
}
