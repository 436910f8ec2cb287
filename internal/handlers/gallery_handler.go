package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petarpopovic013-oss/barbershop/internal/cache"
	"github.com/petarpopovic013-oss/barbershop/internal/gallery"
	"github.com/petarpopovic013-oss/barbershop/internal/httperr"
	"github.com/petarpopovic013-oss/barbershop/internal/httpresp"
)

const (
	maxUploadBytes  = 10 << 20
	galleryMaxWidth = 1600
	thumbMaxWidth   = 320
	webpQuality     = 80
	thumbQuality    = 70

	galleryCacheKey = "gallery:list"
)

// GalleryStore is the object-storage contract the handler needs.
type GalleryStore interface {
	Upload(ctx context.Context, full, thumb []byte) (*gallery.Image, error)
	List(ctx context.Context) ([]gallery.Image, error)
}

// ======================================================
// HANDLER
// ======================================================

// GalleryHandler serves the public photo wall. store is nil when the
// bucket is not configured; endpoints then answer 503 instead of panicking.
type GalleryHandler struct {
	store GalleryStore
	cache *cache.Cache
}

func NewGalleryHandler(store GalleryStore, cch *cache.Cache) *GalleryHandler {
	return &GalleryHandler{store: store, cache: cch}
}

func (h *GalleryHandler) enabled(c *gin.Context) bool {
	if h.store == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "Gallery storage is not configured")
		return false
	}
	return true
}

// ======================================================
// GET /api/gallery
// ======================================================

func (h *GalleryHandler) List(c *gin.Context) {
	if !h.enabled(c) {
		return
	}

	var images []gallery.Image
	if h.cache.Get(c.Request.Context(), galleryCacheKey, &images) {
		httpresp.OK(c, gin.H{"images": images})
		return
	}

	images, err := h.store.List(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "Failed to load gallery")
		return
	}

	h.cache.Set(c.Request.Context(), galleryCacheKey, images)
	httpresp.OK(c, gin.H{"images": images})
}

// ======================================================
// POST /api/admin/gallery
// ======================================================

func (h *GalleryHandler) Upload(c *gin.Context) {
	if !h.enabled(c) {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "An image file is required")
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		httperr.BadRequest(c, "Image is larger than 10 MB")
		return
	}

	full, err := gallery.EncodeWebP(file, galleryMaxWidth, webpQuality)
	if err != nil {
		httperr.BadRequest(c, "File is not a decodable image")
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		httperr.Internal(c, "Failed to read image")
		return
	}
	thumb, err := gallery.EncodeWebP(file, thumbMaxWidth, thumbQuality)
	if err != nil {
		httperr.BadRequest(c, "File is not a decodable image")
		return
	}

	img, err := h.store.Upload(c.Request.Context(), full, thumb)
	if err != nil {
		httperr.Internal(c, "Failed to store image")
		return
	}

	// The public listing is cached; an upload must show up on the next read.
	h.cache.Invalidate(c.Request.Context(), galleryCacheKey)

	httpresp.Created(c, gin.H{"image": img})
}
