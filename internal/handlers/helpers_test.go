package handlers

import (
	"PartsCatalog/internal/config"
	"PartsCatalog/internal/middleware"
	"PartsCatalog/internal/repo"
	"PartsCatalog/internal/repo/fs"
	"PartsCatalog/internal/service"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestHandler собирает роутер на in-memory SQLite и временной директории для изображений.
func newTestHandler(t *testing.T) (*Handler, *config.Config) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &config.Config{
		DatabaseDSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
		AuthSecret:     "test-secret",
		UploadDir:      t.TempDir(),
		UploadMaxMB:    4,
		CORSOrigins:    []string{"*"},
	}

	db, err := repo.InitDB(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	images, err := fs.NewImageStore(cfg.UploadDir)
	require.NoError(t, err)

	logger := zap.NewNop().Sugar()
	middleware.SetLogger(logger)

	userSvc := service.NewUserService(repo.NewUserRepository(db), logger)
	partSvc := service.NewPartService(repo.NewPartRepository(db), images, logger)

	return NewHandler(userSvc, partSvc, logger, cfg), cfg
}

func doJSON(t *testing.T, h *Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.Router.ServeHTTP(rr, req)
	return rr
}

type formFile struct {
	field, name string
	data        []byte
}

func doMultipart(t *testing.T, h *Handler, method, path string, fields map[string]string, files ...formFile) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.Router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

// loginAs входит под указанным пользователем и возвращает токен.
func loginAs(t *testing.T, h *Handler, email, password string) string {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[loginResponse](t, rr).Token
}

func seedUsers(t *testing.T, h *Handler) {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/api/auth/init-users", "", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func doRaw(h *Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	rr := httptest.NewRecorder()
	h.Router.ServeHTTP(rr, req)
	return rr
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
