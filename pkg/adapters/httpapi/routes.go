package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) setupRoutes() {
	notes := s.engine.Group("/notes")
	{
		notes.GET("", s.handleListNotes)
		notes.GET("/:note_name", s.handleGetNote)
		notes.PUT("/:note_name", s.limitBody(), s.handleUpdateNote)
		notes.DELETE("/:note_name", s.handleDeleteNote)
	}
	s.engine.POST("/write", s.limitBody(), s.handleCreateNote)

	s.engine.GET("/UploadForm.html", s.handleUploadForm)
	s.engine.GET("/docs", s.handleDocs)
	s.engine.GET("/docs/openapi.json", s.handleOpenAPI)

	s.engine.GET("/events", s.handleEvents)
	s.engine.GET("/health", s.handleHealth)

	s.engine.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not found")
	})
}
