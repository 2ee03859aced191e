// Package testsuite boots the whole service against a throwaway SQLite
// database and an in-memory Redis for end-to-end tests.
package testsuite

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/14kear/online_polls/internal/app"
	"github.com/14kear/online_polls/internal/config"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type Suite struct {
	Cfg   *config.Config
	App   *app.App
	Redis *miniredis.Miniredis
}

// New starts the service. opts may adjust the config before the app is built.
func New(t *testing.T, opts ...func(cfg *config.Config)) *Suite {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)

	cfg := &config.Config{
		Env: "test",
		Storage: config.StorageConfig{
			Driver:      "sqlite",
			DSN:         "file:" + filepath.Join(t.TempDir(), "polls.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
			AutoMigrate: true,
		},
		HTTP:  config.HTTPConfig{Port: 0},
		Redis: config.RedisConfig{Address: mr.Addr()},
		Auth: config.AuthConfig{
			Secret:             "test-secret",
			TokenTTL:           time.Hour,
			CookieName:         "sessionid",
			DefaultPermissions: []string{"polls.add_poll"},
		},
		Polls: config.PollsConfig{PageSize: 6, MinePageSize: 7},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	application, err := app.NewApp(ctx, log, cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
		defer stopCancel()
		_ = application.Stop(stopCtx)
	})

	return &Suite{Cfg: cfg, App: application, Redis: mr}
}

// Do sends form to path and returns the recorded response. An empty token
// makes an anonymous request.
func (s *Suite) Do(t *testing.T, method, path string, form url.Values, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: s.Cfg.Auth.CookieName, Value: token})
	}

	rec := httptest.NewRecorder()
	s.App.HTTPServer.Engine().ServeHTTP(rec, req)
	return rec
}

// Register creates an account and returns its session token.
func (s *Suite) Register(t *testing.T, username, password string) string {
	t.Helper()

	rec := s.Do(t, http.MethodPost, "/register", url.Values{
		"username":  {username},
		"password1": {password},
		"password2": {password},
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return Decode(t, rec)["token"].(string)
}

func (s *Suite) Login(t *testing.T, username, password string) string {
	t.Helper()

	rec := s.Do(t, http.MethodPost, "/login", url.Values{
		"username": {username},
		"password": {password},
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	return Decode(t, rec)["token"].(string)
}

// CreatePoll adds a poll with two choices as the token's user and returns
// the new poll id.
func (s *Suite) CreatePoll(t *testing.T, token, text, choice1, choice2 string) int64 {
	t.Helper()

	rec := s.Do(t, http.MethodPost, "/polls/add", url.Values{
		"text":    {text},
		"choice1": {choice1},
		"choice2": {choice2},
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	poll := Decode(t, rec)["poll"].(map[string]any)
	return int64(poll["id"].(float64))
}

func Decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
