package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kitchen/internal/auth"
	"kitchen/internal/db"
	"kitchen/internal/handlers"
	"kitchen/internal/store"
)

const testPassword = "Sh4rpKnives!"

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:server_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	database, err := gorm.Open(sqlite.Open(dsn), db.GormConfig())
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(database); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	if err := auth.EnsureRoles(context.Background(), database); err != nil {
		t.Fatalf("failed to ensure roles: %v", err)
	}
	return store.New(database)
}

func seedCook(t *testing.T, st *store.Store, username, role string) {
	t.Helper()
	_, err := st.CreateCook(context.Background(), store.NewCookInput{
		CookInput: store.CookInput{Username: username, Role: role},
		Password1: testPassword,
		Password2: testPassword,
	})
	if err != nil {
		t.Fatalf("CreateCook(%q) error = %v", username, err)
	}
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		handlers.Configure(nil, nil, nil)
	})
	return srv
}

// login posts credentials and returns the session cookie.
func login(t *testing.T, h http.Handler, username string) *http.Cookie {
	t.Helper()
	form := url.Values{"username": {username}, "password": {testPassword}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after login, got %d", rr.Code)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}
	return cookies[0]
}

func get(h http.Handler, target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestNewAppliesSessionDefaults(t *testing.T) {
	st := newTestStore(t)
	seedCook(t, st, "alice", "employee")

	srv := newTestServer(t, Config{Addr: ":8080", Session: SessionConfig{CookieSecure: true}, Store: st})
	if srv.httpServer.Addr != ":8080" {
		t.Fatalf("expected server addr :8080, got %q", srv.httpServer.Addr)
	}

	cookie := login(t, srv.Handler(), "alice")
	if cookie.Name != "kitchen_session" {
		t.Fatalf("expected default session cookie name, got %q", cookie.Name)
	}
	if !cookie.Secure {
		t.Fatal("expected cookie secure flag to be true")
	}
}

func TestRouterAppliesAccessPolicy(t *testing.T) {
	st := newTestStore(t)
	seedCook(t, st, "trainee", "trainee")
	seedCook(t, st, "employee", "employee")

	srv := newTestServer(t, Config{Addr: ":8080", Store: st})
	h := srv.Handler()

	if rr := get(h, "/dishes/", nil); rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
		t.Fatalf("expected anonymous list to redirect to /login, got %d %q", rr.Code, rr.Header().Get("Location"))
	}

	trainee := login(t, h, "trainee")
	employee := login(t, h, "employee")

	tests := []struct {
		name   string
		target string
		cookie *http.Cookie
		want   int
	}{
		{"trainee lists dishes", "/dishes/", trainee, http.StatusOK},
		{"trainee opens dashboard", "/", trainee, http.StatusOK},
		{"trainee cannot create dishes", "/dishes/create/", trainee, http.StatusForbidden},
		{"employee creates dishes", "/dishes/create/", employee, http.StatusOK},
		{"employee cannot create cooks", "/cooks/create/", employee, http.StatusForbidden},
		{"missing detail", "/dishes/42/", trainee, http.StatusNotFound},
		{"non-numeric id", "/dishes/abc/", trainee, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr := get(h, tt.target, tt.cookie); rr.Code != tt.want {
				t.Fatalf("GET %s: expected status %d, got %d", tt.target, tt.want, rr.Code)
			}
		})
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, Config{Addr: ":8080", Store: newTestStore(t)})

	rr := get(srv.Handler(), "/healthz", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}
	if _, err := uuid.Parse(rr.Header().Get(requestIDHeader)); err != nil {
		t.Fatalf("expected a uuid request id, got %q", rr.Header().Get(requestIDHeader))
	}

	inbound := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, inbound)
	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	if got := rr.Header().Get(requestIDHeader); got != inbound {
		t.Fatalf("expected inbound request id %q to be kept, got %q", inbound, got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{Addr: ":8080", Store: newTestStore(t), Metrics: MetricsConfig{Enabled: true}})

	get(srv.Handler(), "/healthz", nil)
	rr := get(srv.Handler(), "/metrics", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), `kitchen_http_requests_total{method="GET",route="health",status="200"} 1`) {
		t.Fatalf("expected the health request to be counted, got:\n%s", body)
	}
	if !strings.Contains(string(body), "go_sql_open_connections") {
		t.Fatal("expected connection pool statistics")
	}
}

func TestMetricsDisabled(t *testing.T) {
	srv := newTestServer(t, Config{Addr: ":8080", Store: newTestStore(t)})
	if rr := get(srv.Handler(), "/metrics", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected /metrics to be absent, got %d", rr.Code)
	}
}

func TestRedisSessionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	st := newTestStore(t)
	seedCook(t, st, "alice", "employee")

	srv := newTestServer(t, Config{
		Addr:    ":8080",
		Store:   st,
		Session: SessionConfig{Lifetime: time.Hour, RedisURL: "redis://" + mr.Addr()},
	})
	t.Cleanup(func() { srv.Stop() })

	cookie := login(t, srv.Handler(), "alice")
	if len(mr.Keys()) != 1 {
		t.Fatalf("expected the session in redis, found keys %v", mr.Keys())
	}
	if rr := get(srv.Handler(), "/dishes/", cookie); rr.Code != http.StatusOK {
		t.Fatalf("expected the redis-backed session to authenticate, got %d", rr.Code)
	}
}

func TestNewFailsOnUnreachableRedis(t *testing.T) {
	_, err := New(Config{Addr: ":8080", Session: SessionConfig{RedisURL: "redis://127.0.0.1:1"}})
	if err == nil {
		t.Fatal("expected an error for an unreachable redis server")
	}
}
