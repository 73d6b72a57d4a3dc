package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coralab/coralab-backend/internal/apierr"
	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/services"
)

type ResearchHandler struct {
	log             *logger.Logger
	researchService services.ResearchService
}

func NewResearchHandler(log *logger.Logger, researchService services.ResearchService) *ResearchHandler {
	return &ResearchHandler{
		log:             log.With("handler", "ResearchHandler"),
		researchService: researchService,
	}
}

func (h *ResearchHandler) Create(c *gin.Context) {
	var input services.ResearchInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	research, err := h.researchService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "research created", research)
}

func (h *ResearchHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	research, err := h.researchService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "research retrieved", research)
}

func (h *ResearchHandler) List(c *gin.Context) {
	year, err := queryYear(c)
	if err != nil {
		respondError(c, err)
		return
	}
	researches, err := h.researchService.List(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "researches retrieved", researches)
}

func (h *ResearchHandler) Update(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var input services.ResearchInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	research, err := h.researchService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "research updated", research)
}

func (h *ResearchHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.researchService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "research deleted", nil)
}

func (h *ResearchHandler) ListByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1900 || year > 3000 {
		respondError(c, apierr.Validation(map[string]string{"year": "must be a four-digit year"}))
		return
	}
	researches, err := h.researchService.List(c.Request.Context(), &year)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "researches retrieved", researches)
}

func (h *ResearchHandler) ListProgress(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	progresses, err := h.researchService.ListProgress(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "progresses retrieved", progresses)
}

func (h *ResearchHandler) AddProgress(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var input services.ResearchProgressInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	progress, err := h.researchService.AddProgress(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "progress created", progress)
}

func (h *ResearchHandler) DeleteProgress(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	progressID, err := pathUUID(c, "progressId")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.researchService.DeleteProgress(c.Request.Context(), id, progressID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "progress deleted", nil)
}

type attachDocumentationRequest struct {
	DocumentationID string `json:"documentation_id" binding:"required,uuid"`
	IsThumbnail     bool   `json:"is_thumbnail"`
}

func (h *ResearchHandler) AttachDocumentation(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req attachDocumentationRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	docID, err := pathUUIDFromString(req.DocumentationID, "documentation_id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.researchService.AttachDocumentation(c.Request.Context(), id, docID, req.IsThumbnail); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "documentation attached", nil)
}

func (h *ResearchHandler) DetachDocumentation(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	docID, err := pathUUID(c, "documentationId")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.researchService.DetachDocumentation(c.Request.Context(), id, docID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "documentation detached", nil)
}

func queryYear(c *gin.Context) (*int, error) {
	raw := c.Query("year")
	if raw == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 || year > 3000 {
		return nil, apierr.Validation(map[string]string{"year": "must be a four-digit year"})
	}
	return &year, nil
}
