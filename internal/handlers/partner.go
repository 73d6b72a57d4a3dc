package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/services"
)

type PartnerHandler struct {
	log            *logger.Logger
	partnerService services.PartnerService
}

func NewPartnerHandler(log *logger.Logger, partnerService services.PartnerService) *PartnerHandler {
	return &PartnerHandler{
		log:            log.With("handler", "PartnerHandler"),
		partnerService: partnerService,
	}
}

func (h *PartnerHandler) Create(c *gin.Context) {
	var input services.PartnerInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	partner, err := h.partnerService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "partner created", partner)
}

func (h *PartnerHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	partner, err := h.partnerService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "partner retrieved", partner)
}

func (h *PartnerHandler) List(c *gin.Context) {
	partners, err := h.partnerService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "partners retrieved", partners)
}

func (h *PartnerHandler) Update(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var input services.PartnerInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	partner, err := h.partnerService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "partner updated", partner)
}

func (h *PartnerHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.partnerService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "partner deleted", nil)
}

func (h *PartnerHandler) AddMember(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var input services.PartnerMemberInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	member, err := h.partnerService.AddMember(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "partner member created", member)
}

func (h *PartnerHandler) UpdateMember(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	memberID, err := pathUUID(c, "memberId")
	if err != nil {
		respondError(c, err)
		return
	}
	var input services.PartnerMemberInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	member, err := h.partnerService.UpdateMember(c.Request.Context(), id, memberID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "partner member updated", member)
}

func (h *PartnerHandler) DeleteMember(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	memberID, err := pathUUID(c, "memberId")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.partnerService.DeleteMember(c.Request.Context(), id, memberID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "partner member deleted", nil)
}
