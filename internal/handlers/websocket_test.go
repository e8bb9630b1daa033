package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Shriramtantry/task-manager/internal/models"
	"github.com/Shriramtantry/task-manager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws/tasks/1", 1 * time.Second},
		{"interval_string_valid", "/ws/tasks/1?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws/tasks/1?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws/tasks/1?interval=20s", 1 * time.Second},
		{"interval_ms_too_large", "/ws/tasks/1?interval_ms=20000", 1 * time.Second},
		{"interval_invalid_string", "/ws/tasks/1?interval=bogus", 1 * time.Second},
		{"both_present_interval_wins", "/ws/tasks/1?interval=2s&interval_ms=150", 2 * time.Second},
		{"invalid_interval_falls_back_to_ms", "/ws/tasks/1?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tc.u, nil)
			if got := h.parseInterval(c); got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func dialFeed(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = path
	u.RawQuery = "interval_ms=20"

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	return conn
}

func TestWebSocket_TaskFeed_InitialAndPeriodic(t *testing.T) {
	tasks := &mockTasks{list: []models.Task{{ID: 1, Description: "buy milk", UserID: 4}}}
	srv := httptest.NewServer(newTestRouter(&service.Service{Tasks: tasks}))
	defer srv.Close()

	conn := dialFeed(t, srv, "/ws/tasks/4")
	defer conn.Close()

	for i := 0; i < 2; i++ {
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if env.Type != "tasks" {
			t.Fatalf("bad envelope: %+v", env)
		}
		var got []models.Task
		if err := json.Unmarshal(env.Data, &got); err != nil {
			t.Fatalf("unmarshal tasks: %v", err)
		}
		if len(got) != 1 || got[0].Description != "buy milk" {
			t.Fatalf("unexpected tasks: %+v", got)
		}
	}

	tasks.mu.Lock()
	lastUser := tasks.lastUser
	tasks.mu.Unlock()
	if lastUser != 4 {
		t.Fatalf("feed listed user %d, want 4", lastUser)
	}
}

func TestWebSocket_TaskFeed_EmptyListIsArray(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(&service.Service{Tasks: &mockTasks{}}))
	defer srv.Close()

	conn := dialFeed(t, srv, "/ws/tasks/8")
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(env.Data) != "[]" {
		t.Fatalf("data=%s, want []", env.Data)
	}
}

func TestWebSocket_TaskFeed_ErrorFrame(t *testing.T) {
	tasks := &mockTasks{listErr: errors.New("db down")}
	srv := httptest.NewServer(newTestRouter(&service.Service{Tasks: tasks}))
	defer srv.Close()

	conn := dialFeed(t, srv, "/ws/tasks/1")
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	if env.Type != "error" || env.Error != "Error fetching tasks." {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestWebSocket_BadUserIDRejectedBeforeUpgrade(t *testing.T) {
	tasks := &mockTasks{}
	r := newTestRouter(&service.Service{Tasks: tasks})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws/tasks/abc", nil))

	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), "Error fetching tasks.") {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
	if tasks.calls() != 0 {
		t.Fatalf("service must not be called")
	}
}

func TestWebSocket_ClosesWhenClientLeaves(t *testing.T) {
	tasks := &mockTasks{}
	srv := httptest.NewServer(newTestRouter(&service.Service{Tasks: tasks}))
	defer srv.Close()

	conn := dialFeed(t, srv, "/ws/tasks/2")
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	_ = conn.Close()

	// give the server loop time to notice, then make sure the ticks stop
	time.Sleep(100 * time.Millisecond)
	before := tasks.calls()
	time.Sleep(100 * time.Millisecond)
	if after := tasks.calls(); after != before {
		t.Fatalf("feed kept polling after disconnect: %d -> %d", before, after)
	}
}
