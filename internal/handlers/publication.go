package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coralab/coralab-backend/internal/apierr"
	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/services"
)

type PublicationHandler struct {
	log        *logger.Logger
	pubService services.PublicationService
}

func NewPublicationHandler(log *logger.Logger, pubService services.PublicationService) *PublicationHandler {
	return &PublicationHandler{
		log:        log.With("handler", "PublicationHandler"),
		pubService: pubService,
	}
}

func (h *PublicationHandler) Create(c *gin.Context) {
	var input services.PublicationInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	publication, err := h.pubService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "publication created", publication)
}

func (h *PublicationHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	publication, err := h.pubService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "publication retrieved", publication)
}

func (h *PublicationHandler) List(c *gin.Context) {
	year, err := queryYear(c)
	if err != nil {
		respondError(c, err)
		return
	}
	publications, err := h.pubService.List(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "publications retrieved", publications)
}

func (h *PublicationHandler) ListByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1900 || year > 3000 {
		respondError(c, apierr.Validation(map[string]string{"year": "must be a four-digit year"}))
		return
	}
	publications, err := h.pubService.List(c.Request.Context(), &year)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "publications retrieved", publications)
}

func (h *PublicationHandler) Update(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var input services.PublicationInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	publication, err := h.pubService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "publication updated", publication)
}

func (h *PublicationHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.pubService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "publication deleted", nil)
}
