package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dermalyze/dermalyze/internal/config"
	"github.com/dermalyze/dermalyze/internal/logging"
	"github.com/dermalyze/dermalyze/internal/server"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func newTestServer(t *testing.T) (*fiber.App, string) {
	t.Helper()
	uploadDir := t.TempDir()
	cfg := config.Config{
		AppName:        "Dermalyze",
		AppEnv:         "test",
		Port:           "0",
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		UploadDir:      uploadDir,
		ShutdownPeriod: time.Second,
		IdempotencyTTL: time.Minute,
	}

	srv, err := server.New(cfg, nil, nil, logging.Discard())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return srv.App(), uploadDir
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode %s %s response %q: %v", method, path, raw, err)
		}
	}
	return resp.StatusCode, decoded
}

func doPredict(t *testing.T, app *fiber.App, token string) (int, map[string]any) {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "face.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(pngBytes); err != nil {
		t.Fatalf("write image: %v", err)
	}
	if err := form.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodPost, "/api/predict", &body)
	req.Header.Set(fiber.HeaderContentType, form.FormDataContentType())
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	defer resp.Body.Close()

	decoded := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode predict response: %v", err)
	}
	return resp.StatusCode, decoded
}

func TestLoginPredictLogoutScenario(t *testing.T) {
	app, uploadDir := newTestServer(t)

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/register", "", map[string]string{
		"name": "Ayu", "email": "ayu@example.com", "password": "correct-horse",
	})
	if status != fiber.StatusOK {
		t.Fatalf("register: expected 200, got %d", status)
	}

	status, body := doJSON(t, app, fiber.MethodPost, "/api/login", "", map[string]string{
		"email": "ayu@example.com", "password": "correct-horse",
	})
	if status != fiber.StatusOK {
		t.Fatalf("login: expected 200, got %d", status)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login returned no token: %v", body)
	}

	status, body = doPredict(t, app, token)
	if status != fiber.StatusOK {
		t.Fatalf("predict: expected 200, got %d (%v)", status, body)
	}
	data, _ := body["data"].(map[string]any)
	if data == nil || data["label"] == "" {
		t.Fatalf("predict returned no label: %v", body)
	}
	confidence, _ := data["confidence"].(float64)
	if confidence < 0 || confidence > 100 {
		t.Fatalf("confidence out of [0,100]: %f", confidence)
	}

	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("staged asset survived the request: %d files remain", len(entries))
	}

	status, body = doJSON(t, app, fiber.MethodGet, "/api/history", token, nil)
	if status != fiber.StatusOK {
		t.Fatalf("history: expected 200, got %d", status)
	}
	history, _ := body["history"].([]any)
	if len(history) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(history))
	}

	status, body = doJSON(t, app, fiber.MethodPost, "/api/add-poin", token, nil)
	if status != fiber.StatusOK {
		t.Fatalf("add-poin: expected 200, got %d", status)
	}
	if poin, _ := body["poin"].(float64); poin != 1 {
		t.Fatalf("expected poin=1, got %v", body["poin"])
	}

	status, _ = doJSON(t, app, fiber.MethodPost, "/api/logout", token, nil)
	if status != fiber.StatusOK {
		t.Fatalf("logout: expected 200, got %d", status)
	}

	// Same structurally valid token must now be rejected.
	status, body = doPredict(t, app, token)
	if status != fiber.StatusUnauthorized {
		t.Fatalf("predict after logout: expected 401, got %d", status)
	}
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success=false after logout, got %v", body)
	}
	if body["error"] == nil {
		t.Fatalf("expected error message in rejection body: %v", body)
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app, _ := newTestServer(t)

	for _, route := range []struct {
		method, path string
	}{
		{fiber.MethodPost, "/api/logout"},
		{fiber.MethodGet, "/api/products"},
		{fiber.MethodGet, "/api/history"},
		{fiber.MethodPost, "/api/add-poin"},
	} {
		status, body := doJSON(t, app, route.method, route.path, "", nil)
		if status != fiber.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, status)
		}
		if success, _ := body["success"].(bool); success {
			t.Fatalf("%s %s: expected success=false, got %v", route.method, route.path, body)
		}
	}
}

func TestInvalidCredentials(t *testing.T) {
	app, _ := newTestServer(t)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/login", "", map[string]string{
		"email": "nobody@example.com", "password": "whatever",
	})
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "Invalid credentials") {
		t.Fatalf("expected Invalid credentials error, got %v", body)
	}
}
