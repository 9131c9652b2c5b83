package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	indexFile    = "index.html"
	responseFile = "response.json"
	xmlFile      = "index.xml"
	xmlErrorFile = "error.xml"
	notFoundFile = "404.html"
)

// GetIndex serves the landing page
// (GET /)
func (h *Handler) GetIndex(c *gin.Context) {
	h.serveFile(c, http.StatusOK, indexFile)
}

// GetSleep holds the worker for the configured duration before answering
// (GET /sleep)
func (h *Handler) GetSleep(c *gin.Context) {
	time.Sleep(h.sleep)
	h.serveFile(c, http.StatusOK, responseFile)
}

// GetXML serves an XML document
// (GET /xml)
func (h *Handler) GetXML(c *gin.Context) {
	h.serveFile(c, http.StatusOK, xmlFile)
}

// GetXMLError serves an XML error document with a 200 status
// (GET /xml_error)
func (h *Handler) GetXMLError(c *gin.Context) {
	h.serveFile(c, http.StatusOK, xmlErrorFile)
}

// GetAPI serves the JSON response
// (GET /api)
func (h *Handler) GetAPI(c *gin.Context) {
	h.serveFile(c, http.StatusOK, responseFile)
}

func (h *Handler) NotFound(c *gin.Context) {
	h.serveFile(c, http.StatusNotFound, notFoundFile)
}

func (h *Handler) serveFile(c *gin.Context, status int, name string) {
	contents, err := os.ReadFile(filepath.Join(h.staticsFolder, name))
	if err != nil {
		zap.S().Named("file_handler").Errorw("failed to read file", "file", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read " + name})
		return
	}

	c.Data(status, ContentType(name), contents)
}

// ContentType maps a file name to its content type from the extension.
func ContentType(filename string) string {
	switch strings.TrimPrefix(filepath.Ext(filename), ".") {
	case "html":
		return "text/html"
	case "xml":
		return "text/xml"
	case "json":
		return "application/json"
	default:
		return "text/plain"
	}
}
