package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/dsp4life2020-woodz/trippintv/internal/client"
	appctx "github.com/dsp4life2020-woodz/trippintv/internal/context"
	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"github.com/dsp4life2020-woodz/trippintv/internal/repository"
	"github.com/dsp4life2020-woodz/trippintv/internal/testutil"
	"gorm.io/gorm"
)

var errTokenExpired = errors.New("token expired")

type fakeAuthClient struct {
	tokens map[string]*auth.Token
}

func (f *fakeAuthClient) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if idToken == "expired" {
		return nil, errTokenExpired
	}
	token, ok := f.tokens[idToken]
	if !ok {
		return nil, errors.New("signature mismatch")
	}
	return token, nil
}

type fakeStorage struct {
	mu      sync.Mutex
	err     error
	uploads map[string][]byte
}

func (f *fakeStorage) Upload(_ context.Context, name, _ string, r io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[name] = data
	return "https://storage.test/" + name, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.entries[key]
	return data, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.entries, k)
		f.deleted = append(f.deleted, k)
	}
	return nil
}

func (f *fakeCache) Ping(context.Context) error { return nil }
func (f *fakeCache) Enabled() bool              { return true }

type fakeClients struct {
	auth    client.AuthClient
	storage client.StorageClient
	cache   client.CacheClient
}

func (f fakeClients) AuthClient() client.AuthClient       { return f.auth }
func (f fakeClients) StorageClient() client.StorageClient { return f.storage }
func (f fakeClients) CacheClient() client.CacheClient     { return f.cache }
func (f fakeClients) RabbitMQClient() client.RabbitClient { return nil }
func (f fakeClients) Close() error                        { return nil }

type fixture struct {
	db       *gorm.DB
	repos    repository.Repositories
	services Services
	auth     *fakeAuthClient
	storage  *fakeStorage
	cache    *fakeCache
	now      time.Time
}

// wednesday is inside week 2 of 2024, which runs from Jan 8 to Jan 14.
var wednesday = time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, repos := testutil.NewTestDB(t)
	f := &fixture{
		db:      db,
		repos:   repos,
		auth:    &fakeAuthClient{tokens: map[string]*auth.Token{}},
		storage: &fakeStorage{},
		cache:   newFakeCache(),
		now:     wednesday,
	}
	f.useRepositories(repos)
	return f
}

// useRepositories rebuilds the services over repos, keeping the fixture's fakes and clock.
func (f *fixture) useRepositories(repos repository.Repositories) {
	cfg := dto.Config{MaxUploadBytes: 1024}
	clients := fakeClients{auth: f.auth, storage: f.storage, cache: f.cache}
	expired := func(err error) bool { return errors.Is(err, errTokenExpired) }
	f.services = newServices(repos, cfg, clients, expired, newInMemoryTripBroker(), func() time.Time { return f.now })
}

func sessionFor(user model.User) context.Context {
	return appctx.WithSession(context.Background(), appctx.Session{User: user})
}
