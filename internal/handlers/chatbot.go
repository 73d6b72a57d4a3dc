package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/coralab/coralab-backend/internal/apierr"
	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/services"
)

type ChatbotHandler struct {
	log            *logger.Logger
	chatbotService services.ChatbotService
}

func NewChatbotHandler(log *logger.Logger, chatbotService services.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{
		log:            log.With("handler", "ChatbotHandler"),
		chatbotService: chatbotService,
	}
}

type chatRequest struct {
	Question string `json:"question"`
}

func (h *ChatbotHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		respondError(c, apierr.Validation(map[string]string{"question": "this field is required"}))
		return
	}
	result, err := h.chatbotService.ProcessChat(c.Request.Context(), req.Question)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "chat processed", result)
}
