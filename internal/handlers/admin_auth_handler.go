package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petarpopovic013-oss/barbershop/internal/httperr"
	"github.com/petarpopovic013-oss/barbershop/internal/httpresp"
	"github.com/petarpopovic013-oss/barbershop/internal/session"
)

// ======================================================
// HANDLER
// ======================================================

type AdminAuthHandler struct {
	gate session.Gate

	// secure mirrors the deployment scheme; the cookie is rejected by
	// browsers on plain http when set.
	secure bool
}

func NewAdminAuthHandler(gate session.Gate, secure bool) *AdminAuthHandler {
	return &AdminAuthHandler{gate: gate, secure: secure}
}

// ======================================================
// REQUESTS
// ======================================================

type LoginRequest struct {
	Password string `json:"password"`
}

// ======================================================
// GET /api/admin/auth
// ======================================================

func (h *AdminAuthHandler) Status(c *gin.Context) {
	token, err := c.Cookie(session.CookieName)
	authenticated := err == nil && h.gate.VerifyToken(token)
	httpresp.OK(c, gin.H{"authenticated": authenticated})
}

// ======================================================
// POST /api/admin/auth
// ======================================================

func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		httperr.BadRequest(c, "Password is required")
		return
	}

	if !h.gate.VerifyPassword(req.Password) {
		httperr.Unauthorized(c, "Invalid password")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		session.CookieName,
		h.gate.Token(),
		session.CookieMaxAge,
		"/",
		"",
		h.secure,
		true,
	)
	httpresp.OK(c, gin.H{"message": "Logged in"})
}

// ======================================================
// DELETE /api/admin/auth
// ======================================================

func (h *AdminAuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", h.secure, true)
	httpresp.OK(c, gin.H{"message": "Logged out"})
}
