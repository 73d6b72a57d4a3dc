package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/services"
)

type ContactHandler struct {
	log            *logger.Logger
	contactService services.ContactService
}

func NewContactHandler(log *logger.Logger, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		log:            log.With("handler", "ContactHandler"),
		contactService: contactService,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var input services.ContactInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	contact, err := h.contactService.Submit(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "message received", contact)
}

func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.contactService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "messages retrieved", contacts)
}
