package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/petarpopovic013-oss/barbershop/internal/cache"
	"github.com/petarpopovic013-oss/barbershop/internal/domain/schedule"
	"github.com/petarpopovic013-oss/barbershop/internal/httperr"
	"github.com/petarpopovic013-oss/barbershop/internal/httpresp"
	"github.com/petarpopovic013-oss/barbershop/internal/models"
)

const servicesCacheKey = "services:active"

// ======================================================
// HANDLER
// ======================================================

type ServicesHandler struct {
	repo  schedule.Repository
	cache *cache.Cache
}

func NewServicesHandler(repo schedule.Repository, cch *cache.Cache) *ServicesHandler {
	return &ServicesHandler{repo: repo, cache: cch}
}

// ======================================================
// GET /api/services
// ======================================================

func (h *ServicesHandler) List(c *gin.Context) {
	var services []models.Service
	if h.cache.Get(c.Request.Context(), servicesCacheKey, &services) {
		httpresp.OK(c, gin.H{"services": services})
		return
	}

	services, err := h.repo.ListActiveServices(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "Failed to load services")
		return
	}

	h.cache.Set(c.Request.Context(), servicesCacheKey, services)
	httpresp.OK(c, gin.H{"services": services})
}
