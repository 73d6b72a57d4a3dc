package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/services"
)

type MemberHandler struct {
	log              *logger.Logger
	memberService    services.MemberService
	expertiseService services.MemberExpertiseService
}

func NewMemberHandler(log *logger.Logger, memberService services.MemberService, expertiseService services.MemberExpertiseService) *MemberHandler {
	return &MemberHandler{
		log:              log.With("handler", "MemberHandler"),
		memberService:    memberService,
		expertiseService: expertiseService,
	}
}

func (h *MemberHandler) Create(c *gin.Context) {
	var input services.MemberInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	member, err := h.memberService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "member created", member)
}

func (h *MemberHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	member, err := h.memberService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "member retrieved", member)
}

func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.memberService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "members retrieved", members)
}

func (h *MemberHandler) Update(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var input services.MemberInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	member, err := h.memberService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "member updated", member)
}

func (h *MemberHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.memberService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "member deleted", nil)
}

func (h *MemberHandler) CreateExpertise(c *gin.Context) {
	var input services.MemberExpertiseInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	expertise, err := h.expertiseService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "expertise created", expertise)
}

func (h *MemberHandler) ListExpertise(c *gin.Context) {
	expertises, err := h.expertiseService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "expertises retrieved", expertises)
}

func (h *MemberHandler) UpdateExpertise(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var input services.MemberExpertiseInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	expertise, err := h.expertiseService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "expertise updated", expertise)
}

func (h *MemberHandler) DeleteExpertise(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.expertiseService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "expertise deleted", nil)
}
