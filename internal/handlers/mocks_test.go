package handlers

import (
	"context"
	"sync"

	"github.com/Shriramtantry/task-manager/internal/models"
	"github.com/Shriramtantry/task-manager/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerID  int
	registerErr error
	loginUser   *models.User
	loginErr    error

	lastUsername string
	lastPassword string
}

func (m *mockAuth) Register(_ context.Context, username, password string) (int, error) {
	m.lastUsername = username
	m.lastPassword = password
	return m.registerID, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, username, password string) (*models.User, error) {
	m.lastUsername = username
	m.lastPassword = password
	return m.loginUser, m.loginErr
}

type mockTasks struct {
	mu sync.Mutex

	createID  int
	createErr error
	created   []models.Task

	list      []models.Task
	listErr   error
	listCalls int
	lastUser  int

	deleteErr  error
	lastDelete int
}

func (m *mockTasks) Create(_ context.Context, t models.Task) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, t)
	return m.createID, m.createErr
}

func (m *mockTasks) ListByUser(_ context.Context, userID int) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	m.lastUser = userID
	return m.list, m.listErr
}

func (m *mockTasks) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastDelete = id
	return m.deleteErr
}

func (m *mockTasks) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

type mockActivity struct {
	resp   []models.Activity
	err    error
	last   service.ActivityFilter
	called int
}

func (m *mockActivity) List(_ context.Context, f service.ActivityFilter) ([]models.Activity, error) {
	m.called++
	m.last = f
	return m.resp, m.err
}

type mockHealth struct {
	err error
}

func (m *mockHealth) Ping(context.Context) error { return m.err }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts...)
	return h.InitRoutes()
}
