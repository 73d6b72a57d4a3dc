package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coralab/coralab-backend/internal/apierr"
	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/services"
)

type DocumentationHandler struct {
	log        *logger.Logger
	docService services.DocumentationService
}

func NewDocumentationHandler(log *logger.Logger, docService services.DocumentationService) *DocumentationHandler {
	return &DocumentationHandler{
		log:        log.With("handler", "DocumentationHandler"),
		docService: docService,
	}
}

// Upload accepts multipart form data: the file plus category, optional
// about_type and caption fields.
func (h *DocumentationHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, apierr.Validation(map[string]string{"file": "file is required"}))
		return
	}
	input := services.DocumentationUploadInput{
		Category:  c.PostForm("category"),
		AboutType: c.PostForm("about_type"),
		Caption:   c.PostForm("caption"),
	}
	doc, err := h.docService.Upload(c.Request.Context(), file, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "documentation uploaded", doc)
}

func (h *DocumentationHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	doc, err := h.docService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "documentation retrieved", doc)
}

func (h *DocumentationHandler) ListResearchMedia(c *gin.Context) {
	docs, err := h.docService.ListResearchMedia(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "documentation retrieved", docs)
}

func (h *DocumentationHandler) ListImages(c *gin.Context) {
	docs, err := h.docService.ListResearchMedia(c.Request.Context(), "image")
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "documentation retrieved", docs)
}

func (h *DocumentationHandler) ListVideos(c *gin.Context) {
	docs, err := h.docService.ListResearchMedia(c.Request.Context(), "video")
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "documentation retrieved", docs)
}

func (h *DocumentationHandler) ListAboutMedia(c *gin.Context) {
	docs, err := h.docService.ListAboutMedia(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "documentation retrieved", docs)
}

func (h *DocumentationHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.docService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "documentation deleted", nil)
}
