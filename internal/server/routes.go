package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/idilsaglam/taskboard/internal/service"
)

// NewRouter builds the gin engine with the task API mounted under
// /api/tasks. Panics inside handlers surface as a generic 500; a
// method the routes don't declare gets a 405.
func NewRouter(svc service.API, log *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if log != nil {
			log.Error("handler panic", "panic", recovered, "path", c.Request.URL.Path)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
	}))

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": msgMethodNotAllowed})
	})

	handlers := NewHandlers(svc, log)
	RegisterRoutes(router.Group("/api"), handlers)
	return router
}

// RegisterRoutes mounts the task routes on the given group.
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	tasks := rg.Group("/tasks")
	{
		tasks.GET("", handlers.HandleListTasks)
		tasks.POST("", handlers.HandleCreateTask)
		tasks.PUT("/:id", handlers.HandleToggleTask)
		tasks.DELETE("/:id", handlers.HandleDeleteTask)
	}
}
