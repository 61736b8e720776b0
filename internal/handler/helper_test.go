package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/capstonec242/Tabungin-API/internal/config"
	"github.com/capstonec242/Tabungin-API/internal/database"
	"github.com/capstonec242/Tabungin-API/internal/router"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// env drives requests through the real router against an in-memory SQLite.
type env struct {
	r  *gin.Engine
	db *gorm.DB
}

func newEnv(t *testing.T) *env {
	t.Helper()

	// one shared in-memory database per test, single connection so writes
	// serialize the same way a file-backed database would
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireHours = 1
	cfg.Security.BcryptCost = 4 // bcrypt.MinCost, keeps the suite fast
	cfg.Upload.Dir = t.TempDir()
	cfg.App.PageSize = 20

	return &env{r: router.SetupRouter(cfg, db), db: db}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %q", w.Body.String())
	}
	return data
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	msg, _ := body["error"].(string)
	return msg
}

// account is a registered and logged-in test user.
type account struct {
	Token    string
	UserID   int
	SavingID int
}

func (e *env) register(t *testing.T, username, email, password string) (userID, savingID int) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", w.Code, w.Body.String())
	}
	data := dataOf(t, w)
	user := data["user"].(map[string]any)
	saving := data["saving"].(map[string]any)
	return int(user["id"].(float64)), int(saving["id"].(float64))
}

func (e *env) login(t *testing.T, email, password string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", w.Code, w.Body.String())
	}
	token, _ := dataOf(t, w)["token"].(string)
	if token == "" {
		t.Fatal("login returned empty token")
	}
	return token
}

func (e *env) newAccount(t *testing.T, username, email string) *account {
	t.Helper()
	const password = "Secret123"
	userID, savingID := e.register(t, username, email, password)
	return &account{
		Token:    e.login(t, email, password),
		UserID:   userID,
		SavingID: savingID,
	}
}

func (e *env) addSavings(t *testing.T, a *account, amount float64, description, category string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodPut, fmt.Sprintf("/api/savings/%d/add", a.UserID), a.Token, gin.H{
		"amount":      amount,
		"description": description,
		"category":    category,
	})
}

func (e *env) reduceSavings(t *testing.T, a *account, amount float64, description, category string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodPut, fmt.Sprintf("/api/savings/%d/reduce", a.UserID), a.Token, gin.H{
		"amount":      amount,
		"description": description,
		"category":    category,
	})
}

func (e *env) balance(t *testing.T, a *account) float64 {
	t.Helper()
	w := e.do(t, http.MethodGet, fmt.Sprintf("/api/savings/%d", a.UserID), a.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get savings returned %d: %s", w.Code, w.Body.String())
	}
	return dataOf(t, w)["amount"].(float64)
}
