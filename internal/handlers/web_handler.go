package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WebHandler renders the server-side admin pages. All data loads happen
// client-side against the JSON API, so the handlers only pick a page.
type WebHandler struct{}

func NewWebHandler() *WebHandler {
	return &WebHandler{}
}

func (h *WebHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "base", gin.H{
		"Page": "login",
	})
}

func (h *WebHandler) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "base", gin.H{
		"Page": "dashboard",
	})
}

func (h *WebHandler) Availability(c *gin.Context) {
	c.HTML(http.StatusOK, "base", gin.H{
		"Page": "availability",
	})
}
