package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"applesapi/internal/config"
	handlers "applesapi/internal/http/handler"
	"applesapi/internal/http/middleware"
	"applesapi/internal/service"
	"applesapi/internal/storage"
)

// memStorage is an in-process bucket used to drive the document store end to end.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) Put(_ context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.objects[key]; taken && opt.IfAbsent {
		return storage.ObjectInfo{}, storage.ErrObjectExists
	}
	m.objects[key] = b
	return storage.ObjectInfo{Key: key, Size: int64(len(b)), ContentType: opt.ContentType}, nil
}

func (m *memStorage) Get(_ context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	if !ok {
		return nil, storage.ObjectInfo{}, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), storage.ObjectInfo{Key: key, Size: int64(len(b))}, nil
}

func (m *memStorage) Stat(_ context.Context, key string) (storage.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	if !ok {
		return storage.ObjectInfo{}, storage.ErrObjectNotFound
	}
	return storage.ObjectInfo{Key: key, Size: int64(len(b))}, nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memStorage) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *memStorage) Ping(context.Context) error { return nil }

func quietLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestApp(t *testing.T, b *backend) *fiber.App {
	t.Helper()
	logger := quietLogger()
	app := handlers.NewApp(logger)
	app.Use(middleware.RequestID())
	handlers.RegisterRoutes(app, b.Health, b.Service, logger)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func objectStoreBackend(t *testing.T, store storage.Storage) *backend {
	t.Helper()
	orig := openMinIO
	openMinIO = func(config.MinIOConfig, log.FieldLogger, time.Duration) (storage.Storage, error) {
		return store, nil
	}
	t.Cleanup(func() { openMinIO = orig })

	b, err := newBackend(context.Background(), &config.AppConfig{StoreBackend: config.BackendObjectStore}, quietLogger(), nil)
	require.NoError(t, err)
	return b
}

func TestNewBackend_Unknown(t *testing.T) {
	b, err := newBackend(context.Background(), &config.AppConfig{StoreBackend: "cassandra"}, quietLogger(), nil)

	assert.Nil(t, b)
	assert.EqualError(t, err, `unknown store backend "cassandra"`)
}

func TestNewBackend_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	orig := openPostgres
	openPostgres = func(config.DatabaseConfig, log.FieldLogger, time.Duration) (*sql.DB, error) {
		return db, nil
	}
	defer func() { openPostgres = orig }()

	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectClose()

	b, err := newBackend(context.Background(), &config.AppConfig{StoreBackend: config.BackendPostgres}, quietLogger(), nil)

	require.NoError(t, err)
	assert.Equal(t, service.IDPolicyServerGenerated, b.Policy)
	assert.NoError(t, b.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewBackend_ObjectStore(t *testing.T) {
	b := objectStoreBackend(t, newMemStorage())

	assert.Equal(t, service.IDPolicyClientSupplied, b.Policy)
	assert.NoError(t, b.Close())
}

func TestAppleLifecycle_ObjectStore(t *testing.T) {
	store := newMemStorage()
	store.objects["apples/apple-id.json"] = []byte(`{"id":"apple-id","name":"Red Apple"}`)
	app := newTestApp(t, objectStoreBackend(t, store))

	status, body := do(t, app, http.MethodGet, "/api/apples/apple-id", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, `{"id":"apple-id","name":"Red Apple"}`, body)

	status, _ = do(t, app, http.MethodGet, "/api/apples/invalid-id", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = do(t, app, http.MethodPut, "/api/apples/apple-id", `{"name":"Green Apple"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, `{"id":"apple-id","name":"Green Apple"}`, body)

	// A mismatched body id must not write to another key.
	status, _ = do(t, app, http.MethodPut, "/api/apples/invalid-apple-id", `{"id":"apple-id","name":"Yellow Apple"}`)
	assert.Equal(t, http.StatusNotFound, status)
	_, body = do(t, app, http.MethodGet, "/api/apples/apple-id", "")
	assert.Equal(t, `{"id":"apple-id","name":"Green Apple"}`, body)

	status, _ = do(t, app, http.MethodPost, "/api/apples", `{"id":"apple-id","name":"Red Apple"}`)
	assert.Equal(t, http.StatusConflict, status)

	status, body = do(t, app, http.MethodPost, "/api/apples", `{"name":"Red Apple"}`)
	require.Equal(t, http.StatusCreated, status)
	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Red Apple", created.Name)

	status, body = do(t, app, http.MethodGet, "/api/apples/"+created.ID, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"name":"Red Apple"`)

	status, body = do(t, app, http.MethodGet, "/api/apples", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"total":2`)

	status, _ = do(t, app, http.MethodDelete, "/api/apples/apple-id", "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, app, http.MethodGet, "/api/apples/apple-id", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodDelete, "/api/apples/apple-id", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Len(t, store.objects, 1)

	status, _ = do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestAppleLifecycle_ObjectStoreEscapedIDs(t *testing.T) {
	store := newMemStorage()
	app := newTestApp(t, objectStoreBackend(t, store))

	ids := []string{"a b", "x/y", "café", "a%2Fb", "a+b"}
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			payload, err := json.Marshal(map[string]string{"id": id, "name": "Red Apple"})
			require.NoError(t, err)
			target := "/api/apples/" + url.PathEscape(id)

			status, body := do(t, app, http.MethodPost, "/api/apples", string(payload))
			require.Equal(t, http.StatusCreated, status)
			assert.JSONEq(t, string(payload), body)

			status, body = do(t, app, http.MethodGet, target, "")
			assert.Equal(t, http.StatusOK, status)
			assert.JSONEq(t, string(payload), body)

			status, _ = do(t, app, http.MethodPut, target, `{"name":"Green Apple"}`)
			assert.Equal(t, http.StatusOK, status)

			status, _ = do(t, app, http.MethodPost, "/api/apples", string(payload))
			assert.Equal(t, http.StatusConflict, status)
		})
	}

	status, body := do(t, app, http.MethodGet, "/api/apples", "")
	require.Equal(t, http.StatusOK, status)
	var page struct {
		Data []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &page))
	assert.Equal(t, len(ids), page.Total)
	listed := make([]string, 0, len(page.Data))
	for _, a := range page.Data {
		listed = append(listed, a.ID)
		assert.Equal(t, "Green Apple", a.Name)
	}
	assert.ElementsMatch(t, ids, listed)

	for _, id := range ids {
		status, _ = do(t, app, http.MethodDelete, "/api/apples/"+url.PathEscape(id), "")
		assert.Equal(t, http.StatusNoContent, status, id)
	}
	assert.Empty(t, store.objects)
}

func TestCreate_ConcurrentSameIDOneWins(t *testing.T) {
	store := newMemStorage()
	app := newTestApp(t, objectStoreBackend(t, store))

	const n = 8
	statuses := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, _ := do(t, app, http.MethodPost, "/api/apples", `{"id":"apple-id","name":"Red Apple"}`)
			statuses <- status
		}()
	}
	wg.Wait()
	close(statuses)

	counts := map[int]int{}
	for s := range statuses {
		counts[s]++
	}
	assert.Equal(t, 1, counts[http.StatusCreated])
	assert.Equal(t, n-1, counts[http.StatusConflict])
}
