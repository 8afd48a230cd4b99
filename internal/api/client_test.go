package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer starts an HTTP server bound to IPv4-only loopback so tests work
// inside restricted sandboxes that forbid IPv6 listeners.
func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("unable to start test server: %v", err)
	}

	server := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	server.Start()
	t.Cleanup(server.Close)
	return server
}

func TestClient_AttachesBearerHeader(t *testing.T) {
	var gotAuth, gotRequestID string
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(Account{ID: 1})
	}))

	client := NewClient(Config{
		BaseURL:   server.URL,
		TokenFunc: func() string { return "tok-abc" },
	})

	_, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_OmitsHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	var hadHeader bool
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hadHeader = r.Header["Authorization"]
		json.NewEncoder(w).Encode(Account{ID: 1})
	}))

	client := NewClient(Config{
		BaseURL:   server.URL,
		TokenFunc: func() string { return "" },
	})

	_, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.False(t, hadHeader, "no Authorization header at all for anonymous sessions")
}

func TestClient_TokenReadPerRequest(t *testing.T) {
	var seen []string
	var mu sync.Mutex
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("Authorization"))
		mu.Unlock()
		json.NewEncoder(w).Encode(Account{ID: 1})
	}))

	token := "first"
	client := NewClient(Config{
		BaseURL:   server.URL,
		TokenFunc: func() string { return token },
	})

	_, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	token = "second"
	_, err = client.CurrentUser(context.Background())
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, "Bearer first", seen[0])
	assert.Equal(t, "Bearer second", seen[1])
}

func TestClient_Unauthorized_FiresHookExactlyOnce(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))

	var hookCalls atomic.Int32
	client := NewClient(Config{
		BaseURL:       server.URL,
		OnAuthFailure: func() { hookCalls.Add(1) },
	})

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.CurrentUser(context.Background())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), hookCalls.Load(),
		"one failure episode, one hook invocation")
	for _, err := range errs {
		require.Error(t, err)
		assert.True(t, IsAuthentication(err))
	}
}

func TestClient_ResetAuthFailure_ReArmsHook(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	var hookCalls atomic.Int32
	client := NewClient(Config{
		BaseURL:       server.URL,
		OnAuthFailure: func() { hookCalls.Add(1) },
	})

	client.CurrentUser(context.Background())
	client.CurrentUser(context.Background())
	assert.Equal(t, int32(1), hookCalls.Load())

	client.ResetAuthFailure()
	client.CurrentUser(context.Background())
	assert.Equal(t, int32(2), hookCalls.Load())
}

func TestClient_Forbidden_DoesNotFireHook(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "insufficient role"})
	}))

	var hookCalls atomic.Int32
	client := NewClient(Config{
		BaseURL:       server.URL,
		OnAuthFailure: func() { hookCalls.Add(1) },
	})

	_, err := client.CurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuthorization(err))
	assert.False(t, IsAuthentication(err))
	assert.Equal(t, int32(0), hookCalls.Load(),
		"a valid session lacking permission must keep its credentials")
}

func TestClient_Timeout_ClassifiedAsTimeoutNotAuth(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))

	var hookCalls atomic.Int32
	client := NewClient(Config{
		BaseURL:       server.URL,
		Timeout:       20 * time.Millisecond,
		OnAuthFailure: func() { hookCalls.Add(1) },
	})

	_, err := client.CurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.False(t, IsAuthentication(err))
	assert.Equal(t, int32(0), hookCalls.Load())
}

func TestClient_StatusCodeClassification(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusBadRequest, KindValidation},
		{http.StatusUnauthorized, KindAuthentication},
		{http.StatusForbidden, KindAuthorization},
		{http.StatusNotFound, KindNotFound},
		{http.StatusUnprocessableEntity, KindValidation},
		{http.StatusInternalServerError, KindServer},
		{http.StatusBadGateway, KindServer},
	}

	for _, tt := range tests {
		status := tt.status
		server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		client := NewClient(Config{BaseURL: server.URL})

		_, err := client.CurrentUser(context.Background())
		require.Error(t, err)
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, tt.want, apiErr.Kind, "status %d", tt.status)
		assert.Equal(t, tt.status, apiErr.StatusCode)
	}
}

func TestClient_Login_ValidatesBeforeNetwork(t *testing.T) {
	var hits atomic.Int32
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.Login(context.Background(), "not-an-email", "secret123")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = client.Login(context.Background(), "admin@school.example", "short")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	assert.Equal(t, int32(0), hits.Load(), "rejected payloads never reach the wire")
}

func TestClient_Login_Success(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@school.example", req.Email)

		json.NewEncoder(w).Encode(LoginResponse{
			User:  Account{ID: 42, Email: req.Email, Status: AccountStatusActive},
			Token: "tok-issued",
		})
	}))
	client := NewClient(Config{BaseURL: server.URL})

	resp, err := client.Login(context.Background(), "admin@school.example", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "tok-issued", resp.Token)
	assert.Equal(t, int64(42), resp.User.ID)
}

func TestClient_ErrorEnvelopeParsing(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "STUDENT_NOT_FOUND",
			"message": "student 99 does not exist",
		})
	}))
	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.GetStudent(context.Background(), 99)
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "STUDENT_NOT_FOUND", apiErr.Code)
	assert.Equal(t, "student 99 does not exist", apiErr.Message)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestListOptions_Query(t *testing.T) {
	assert.Empty(t, ListOptions{}.query())
	assert.Equal(t, "?page=2&page_size=25", ListOptions{Page: 2, PageSize: 25}.query())
	assert.Equal(t, "?search=ada", ListOptions{Search: "ada"}.query())
}
