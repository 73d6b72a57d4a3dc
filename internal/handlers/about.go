package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/services"
)

type AboutHandler struct {
	log          *logger.Logger
	aboutService services.AboutService
}

func NewAboutHandler(log *logger.Logger, aboutService services.AboutService) *AboutHandler {
	return &AboutHandler{
		log:          log.With("handler", "AboutHandler"),
		aboutService: aboutService,
	}
}

func (h *AboutHandler) Get(c *gin.Context) {
	about, err := h.aboutService.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "about retrieved", about)
}

func (h *AboutHandler) Upsert(c *gin.Context) {
	var input services.AboutInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	about, err := h.aboutService.Upsert(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "about saved", about)
}
