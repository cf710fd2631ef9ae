package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/dsp4life2020-woodz/trippintv/internal/client"
	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/repository"
	"github.com/dsp4life2020-woodz/trippintv/internal/service"
	"github.com/dsp4life2020-woodz/trippintv/internal/testutil"
	"github.com/labstack/echo/v4"
)

type fakeAuthClient struct{}

// VerifyIDToken accepts "token-<uid>".
func (fakeAuthClient) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	uid, ok := strings.CutPrefix(idToken, "token-")
	if !ok {
		return nil, errors.New("invalid signature")
	}
	return &auth.Token{UID: uid, Claims: map[string]interface{}{"email": uid + "@example.com", "name": uid}}, nil
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string]int
}

func (m *memoryStorage) Upload(_ context.Context, name, _ string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[name] = len(data)
	return "https://storage.test/" + name, nil
}

type testClients struct {
	storage *memoryStorage
	cache   client.CacheClient
}

func (testClients) AuthClient() client.AuthClient         { return fakeAuthClient{} }
func (t testClients) StorageClient() client.StorageClient { return t.storage }
func (t testClients) CacheClient() client.CacheClient     { return t.cache }
func (testClients) RabbitMQClient() client.RabbitClient   { return nil }
func (testClients) Close() error                          { return nil }

type testServer struct {
	echo    *echo.Echo
	repos   repository.Repositories
	storage *memoryStorage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, nil)
}

// newTestServerWith lets wrap replace the repositories the services see. The returned server's repos stay unwrapped.
func newTestServerWith(t *testing.T, wrap func(repository.Repositories) repository.Repositories) *testServer {
	t.Helper()
	_, repos := testutil.NewTestDB(t)
	serviceRepos := repos
	if wrap != nil {
		serviceRepos = wrap(repos)
	}
	cfg := dto.Config{Environment: "test", Timezone: "UTC", MaxUploadBytes: 1 << 20}
	storage := &memoryStorage{objects: map[string]int{}}
	services := service.NewServices(serviceRepos, cfg, testClients{storage: storage, cache: client.NewCacheClient("")})

	e := echo.New()
	NewControllers(services, cfg, HealthChecks{"database": repos.Ping}).Route(e)
	return &testServer{echo: e, repos: repos, storage: storage}
}

func (s *testServer) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return body, w.FormDataContentType()
}
