package httpapi

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

//go:embed assets/*
var assets embed.FS

func mustAsset(name string) []byte {
	data, err := assets.ReadFile("assets/" + name)
	if err != nil {
		panic(fmt.Sprintf("httpapi: missing embedded asset %s: %v", name, err))
	}
	return data
}

var (
	uploadFormHTML = mustAsset("UploadForm.html")
	docsHTML       = mustAsset("docs.html")
)

// loadOpenAPI decodes the embedded YAML document so it can be served as JSON.
func loadOpenAPI() (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(mustAsset("openapi.yaml"), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode openapi document: %w", err)
	}
	return doc, nil
}

func (s *Server) handleUploadForm(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", uploadFormHTML)
}

func (s *Server) handleDocs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", docsHTML)
}

func (s *Server) handleOpenAPI(c *gin.Context) {
	if s.openapi == nil {
		c.String(http.StatusInternalServerError, msgInternalError)
		return
	}
	c.JSON(http.StatusOK, s.openapi)
}
