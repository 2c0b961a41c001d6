package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"gwp-backend/internal/config"
	"gwp-backend/internal/metrics"
	"gwp-backend/internal/models"
	"gwp-backend/internal/router"
	"gwp-backend/internal/session"
	"gwp-backend/internal/storage"
	"gwp-backend/pkg/limiter"
)

type testServer struct {
	t         *testing.T
	engine    *gin.Engine
	uploadDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8002},
		Database: config.DatabaseConfig{
			Driver:   "sqlite",
			DSN:      filepath.Join(dir, "gwp.db"),
			MinConns: 1,
			MaxConns: 1,
		},
		Session: config.SessionConfig{Backend: "memory"},
		Auth:    config.AuthConfig{AdminUserIDs: []uint{1}},
		Storage: config.StorageConfig{
			Provider:             "local",
			UploadDir:            filepath.Join(dir, "uploads"),
			MaxUploadMB:          5,
			MaxConcurrentUploads: 2,
		},
		CORS: config.CORSConfig{
			Origins:      []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}

	db, err := models.InitDB(&cfg.Database, nil)
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	t.Cleanup(func() { _ = models.Close(db) })

	sessions := session.NewMemoryStore(0, 0)
	files, err := storage.NewLocalProvider(cfg.Storage.UploadDir)
	require.NoError(t, err)
	m, err := metrics.New(sessions)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	engine := router.SetupRouter(cfg, router.Deps{
		Logger:   logger,
		DB:       db,
		Sessions: sessions,
		Files:    files,
		Metrics:  m,
		Uploads:  limiter.NewLocalLimiter(cfg.Storage.MaxConcurrentUploads),
	})
	return &testServer{t: t, engine: engine, uploadDir: cfg.Storage.UploadDir}
}

// do sends body as JSON unless it is nil.
func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// multipart posts fields and, when filename is set, one file part.
func (s *testServer) multipart(path, token string, fields map[string]string, filename string, content []byte) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(s.t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(s.t, err)
		_, err = part.Write(content)
		require.NoError(s.t, err)
	}
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(nombre, username, password string) uint {
	s.t.Helper()
	w := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"nombre": nombre, "username": username, "password": password,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		ID uint `json:"id"`
	}
	decode(s.t, w, &resp)
	return resp.ID
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/auth/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	decode(s.t, w, &resp)
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

// user registers and logs in a user, returning its id and token.
func (s *testServer) user(nombre, username string) (uint, string) {
	s.t.Helper()
	id := s.register(nombre, username, "clave-"+username)
	return id, s.login(username, "clave-"+username)
}

func (s *testServer) createPlanItem(token string, body map[string]interface{}) uint {
	s.t.Helper()
	w := s.do(http.MethodPost, "/plan-maestro", token, body)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		ID uint `json:"id"`
	}
	decode(s.t, w, &resp)
	require.NotZero(s.t, resp.ID)
	return resp.ID
}

func (s *testServer) getPlanItem(token string, id uint) models.PlanItem {
	s.t.Helper()
	w := s.do(http.MethodGet, "/plan-maestro/"+itoa(id), token, nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var item models.PlanItem
	decode(s.t, w, &item)
	return item
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func message(t *testing.T, w *httptest.ResponseRecorder, key string) string {
	t.Helper()
	var body map[string]interface{}
	decode(t, w, &body)
	s, _ := body[key].(string)
	return s
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func (s *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}
