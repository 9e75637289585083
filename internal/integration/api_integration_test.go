package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	taskhttp "taskboard/internal/http"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	t.Setenv("JWT_SECRET", "integration-test-secret")
	service.InitJWT()

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	taskhttp.RegisterRoutes(r, db, "test")
	return r
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
	Task    json.RawMessage `json:"task"`
	Tasks   json.RawMessage `json:"tasks"`
}

func call(t *testing.T, r *gin.Engine, method, path, token, body string) (int, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, resp
}

func registerUser(t *testing.T, r *gin.Engine, name, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, password)
	code, resp := call(t, r, http.MethodPost, "/api/user/register", "", body)
	if code != http.StatusCreated {
		t.Fatalf("register %s: got status %d; want 201", email, code)
	}
	if resp.Token == "" {
		t.Fatalf("register %s: token missing", email)
	}
	return resp.Token
}

func TestRegisterLoginTaskOwnership(t *testing.T) {
	r := setupRouter(t)

	suffix := time.Now().UnixNano()
	annEmail := fmt.Sprintf("ann%d@x.com", suffix)
	bobEmail := fmt.Sprintf("bob%d@x.com", suffix)

	annToken := registerUser(t, r, "Ann", annEmail, "password1")
	bobToken := registerUser(t, r, "Bob", bobEmail, "password1")

	// login succeeds with the right password
	code, resp := call(t, r, http.MethodPost, "/api/user/login", "",
		fmt.Sprintf(`{"email":%q,"password":"password1"}`, annEmail))
	if code != http.StatusOK || resp.Token == "" {
		t.Fatalf("login: got status %d, token %q", code, resp.Token)
	}

	// and fails closed with the wrong one
	code, resp = call(t, r, http.MethodPost, "/api/user/login", "",
		fmt.Sprintf(`{"email":%q,"password":"wrongpass"}`, annEmail))
	if code != http.StatusBadRequest || resp.Message != "Wrong password" {
		t.Fatalf("wrong password: got status %d message %q", code, resp.Message)
	}

	// create a task as Ann; owner comes from the token, not the payload
	code, resp = call(t, r, http.MethodPost, "/api/task", annToken,
		`{"title":"Buy milk","owner":12345}`)
	if code != http.StatusCreated {
		t.Fatalf("create task: got status %d", code)
	}
	var task struct {
		ID        int64 `json:"id"`
		Owner     int64 `json:"owner"`
		Completed bool  `json:"completed"`
	}
	if err := json.Unmarshal(resp.Task, &task); err != nil {
		t.Fatalf("decode task: %v", err)
	}
	if task.Completed {
		t.Fatal("new task should not be completed")
	}
	if task.Owner == 12345 {
		t.Fatal("client-supplied owner overrode the authenticated identity")
	}

	// Ann sees her task, Bob does not
	code, resp = call(t, r, http.MethodGet, "/api/task", annToken, "")
	if code != http.StatusOK || !strings.Contains(string(resp.Tasks), "Buy milk") {
		t.Fatalf("ann list: status %d tasks %s", code, resp.Tasks)
	}
	code, resp = call(t, r, http.MethodGet, "/api/task", bobToken, "")
	if code != http.StatusOK || strings.Contains(string(resp.Tasks), "Buy milk") {
		t.Fatalf("bob list: status %d tasks %s", code, resp.Tasks)
	}

	taskPath := fmt.Sprintf("/api/task/%d", task.ID)

	// cross-owner access is indistinguishable from not-found
	code, _ = call(t, r, http.MethodGet, taskPath, bobToken, "")
	if code != http.StatusNotFound {
		t.Fatalf("bob get ann's task: got status %d; want 404", code)
	}
	code, _ = call(t, r, http.MethodDelete, taskPath, bobToken, "")
	if code != http.StatusNotFound {
		t.Fatalf("bob delete ann's task: got status %d; want 404", code)
	}

	// owner delete succeeds once, then repeats return the same not-found
	code, _ = call(t, r, http.MethodDelete, taskPath, annToken, "")
	if code != http.StatusOK {
		t.Fatalf("ann delete: got status %d; want 200", code)
	}
	code, _ = call(t, r, http.MethodDelete, taskPath, annToken, "")
	if code != http.StatusNotFound {
		t.Fatalf("ann re-delete: got status %d; want 404", code)
	}
}

func TestCompletedCoercionOnWrite(t *testing.T) {
	r := setupRouter(t)

	email := fmt.Sprintf("carol%d@x.com", time.Now().UnixNano())
	token := registerUser(t, r, "Carol", email, "password1")

	cases := []struct {
		payload string
		want    bool
	}{
		{`{"title":"a","completed":true}`, true},
		{`{"title":"b","completed":"yes"}`, true},
		{`{"title":"c","completed":"no"}`, false},
		{`{"title":"d"}`, false},
		{`{"title":"e","completed":1}`, true},
	}

	for _, tc := range cases {
		code, resp := call(t, r, http.MethodPost, "/api/task", token, tc.payload)
		if code != http.StatusCreated {
			t.Fatalf("create %s: got status %d", tc.payload, code)
		}
		var task struct {
			ID        int64 `json:"id"`
			Completed bool  `json:"completed"`
		}
		if err := json.Unmarshal(resp.Task, &task); err != nil {
			t.Fatalf("decode task: %v", err)
		}
		if task.Completed != tc.want {
			t.Fatalf("create %s: completed %v; want %v", tc.payload, task.Completed, tc.want)
		}

		// same rule on the update path
		code, resp = call(t, r, http.MethodPut, fmt.Sprintf("/api/task/%d", task.ID), token,
			`{"completed":"YES"}`)
		if code != http.StatusOK {
			t.Fatalf("update: got status %d", code)
		}
		if err := json.Unmarshal(resp.Task, &task); err != nil {
			t.Fatalf("decode updated task: %v", err)
		}
		if !task.Completed {
			t.Fatalf("update with \"YES\" should complete the task")
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupRouter(t)

	email := fmt.Sprintf("dave%d@x.com", time.Now().UnixNano())
	registerUser(t, r, "Dave", email, "password1")

	body := fmt.Sprintf(`{"name":"Dave2","email":%q,"password":"password1"}`, email)
	code, resp := call(t, r, http.MethodPost, "/api/user/register", "", body)
	if code != http.StatusBadRequest || resp.Message != "User already exists" {
		t.Fatalf("duplicate register: got status %d message %q", code, resp.Message)
	}
}
