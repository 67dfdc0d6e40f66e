package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/obinexuscomputing/marktree/tmpstore"
	"github.com/obinexuscomputing/marktree/util"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	// same validator setup as the server entrypoint so binding errors
	// name fields by their json tags
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}

	os.Exit(m.Run())
}

func testConfig() util.Config {
	return util.Config{
		Environment:       "test",
		HTTPServerAddress: "localhost:0",
		AllowedOrigins:    []string{"http://localhost:3000"},
		ResultTTL:         time.Minute,
	}
}

// fakeStore is an in-memory tmpstore.Store for handler tests. TTLs are
// accepted and ignored.
type fakeStore struct {
	mu      sync.Mutex
	results map[string]tmpstore.ParseResult
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{results: make(map[string]tmpstore.ParseResult)}
}

func (s *fakeStore) SaveParseResult(
	_ context.Context,
	id string,
	result tmpstore.ParseResult,
	_ time.Duration,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}

	s.results[id] = result
	return nil
}

func (s *fakeStore) GetParseResult(_ context.Context, id string) (*tmpstore.ParseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, ok := s.results[id]
	if !ok {
		return nil, tmpstore.ErrResultNotFound
	}

	return &result, nil
}

func (s *fakeStore) DeleteParseResult(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.results, id)
	return nil
}

func newTestService(t *testing.T, config util.Config, store tmpstore.Store) *Service {
	t.Helper()

	service, err := NewService(config, store)
	require.NoError(t, err)

	return service
}

func postJSON(t *testing.T, service *Service, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	request, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	service.router.ServeHTTP(recorder, request)

	return recorder
}

func getURL(t *testing.T, service *Service, url string) *httptest.ResponseRecorder {
	t.Helper()

	request, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	service.router.ServeHTTP(recorder, request)

	return recorder
}

func decodeJSON[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&out))

	return out
}

func TestPing(t *testing.T) {
	service := newTestService(t, testConfig(), newFakeStore())

	recorder := getURL(t, service, PingURL)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "pong", recorder.Body.String())
}

func TestRequestIDEchoed(t *testing.T) {
	service := newTestService(t, testConfig(), newFakeStore())

	recorder := getURL(t, service, PingURL)
	require.NotEmpty(t, recorder.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	config := testConfig()
	service := newTestService(t, config, newFakeStore())

	request, err := http.NewRequest(http.MethodOptions, PingURL, nil)
	require.NoError(t, err)
	request.Header.Set("Origin", config.AllowedOrigins[0])

	recorder := httptest.NewRecorder()
	service.router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusNoContent, recorder.Code)
	require.Equal(t, config.AllowedOrigins[0], recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSUnknownOrigin(t *testing.T) {
	service := newTestService(t, testConfig(), newFakeStore())

	request, err := http.NewRequest(http.MethodGet, PingURL, nil)
	require.NoError(t, err)
	request.Header.Set("Origin", "http://evil.example")

	recorder := httptest.NewRecorder()
	service.router.ServeHTTP(recorder, request)

	require.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}
