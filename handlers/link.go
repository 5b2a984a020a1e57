package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trackly-server/service"
)

// LinkTitle resolves a page title on demand, for previews while composing an
// entry. Same cache and fallback chain as the background worker, so a dead
// page still answers with its host name.
func LinkTitle(c *gin.Context) {
	rawURL := strings.TrimSpace(c.Query("url"))
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "http(s) url required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": 0,
		"url":         rawURL,
		"title":       service.ResolveTitle(c.Request.Context(), rawURL),
	})
}
