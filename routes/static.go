package routes

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"fashion-store/models"

	"github.com/gin-gonic/gin"
)

// StaticPages serves the exported site from root. A request for /ar/shop is
// answered by ar/shop, ar/shop.html or ar/shop/index.html, in that order.
func StaticPages(root string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Not found"})
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Not found"})
			return
		}

		clean := path.Clean("/" + c.Request.URL.Path)
		base := filepath.Join(root, filepath.FromSlash(clean))
		for _, candidate := range []string{base, base + ".html", filepath.Join(base, "index.html")} {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				c.File(candidate)
				return
			}
		}

		if page, err := os.ReadFile(filepath.Join(root, "404.html")); err == nil {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", page)
			return
		}
		c.String(http.StatusNotFound, "404 page not found")
	}
}
