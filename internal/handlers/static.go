package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

const indexFile = "index.html"

// serveStatic answers unmatched GET/HEAD requests from the static directory.
func (h *Handler) serveStatic(c *gin.Context) {
	if h.staticDir == "" || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
		c.String(http.StatusNotFound, msgNotFound)
		return
	}

	// Clean against "/" so ".." can never climb out of staticDir.
	rel := path.Clean("/" + c.Request.URL.Path)
	p := filepath.Join(h.staticDir, filepath.FromSlash(rel))

	info, err := os.Stat(p)
	if err == nil && info.IsDir() {
		p = filepath.Join(p, indexFile)
		info, err = os.Stat(p)
	}
	if err != nil || info.IsDir() {
		c.String(http.StatusNotFound, msgNotFound)
		return
	}
	c.File(p)
}
