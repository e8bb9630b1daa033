package handlers

import (
	"net/http"

	_ "github.com/Shriramtantry/task-manager/docs"
	"github.com/Shriramtantry/task-manager/internal/logger"
	"github.com/Shriramtantry/task-manager/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const welcomeMessage = "Welcome to the Task Manager!"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services  *service.Service
	log       *logger.Logger
	staticDir string
}

// Option tweaks a Handler at construction time.
type Option func(*Handler)

// WithStaticDir serves files from dir for requests no route matches.
func WithStaticDir(dir string) Option {
	return func(h *Handler) { h.staticDir = dir }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	h := &Handler{services: services, log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), h.requestLogger())

	router.GET("/", h.welcome)
	router.GET("/health", h.health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h.registerAPIRoutes(router)

	router.GET("/ws/tasks/:userId", h.wsTasks)

	router.NoRoute(h.serveStatic)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.GET("/activity", h.getActivity)
	}

	tasks := api.Group("/tasks")
	{
		tasks.POST("", h.createTask)
		tasks.GET("/:userId", h.listTasks)
		tasks.DELETE("/:taskId", h.deleteTask)
	}
}

// @Summary      Welcome
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) welcome(c *gin.Context) {
	c.String(http.StatusOK, welcomeMessage)
}

// @Summary      Health check
// @Description  Pings the store.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	if err := h.services.Health.Ping(c.Request.Context()); err != nil {
		h.log.Warnw("health_ping_failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
