package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/services"
)

type LecturerHandler struct {
	log             *logger.Logger
	lecturerService services.LecturerService
}

func NewLecturerHandler(log *logger.Logger, lecturerService services.LecturerService) *LecturerHandler {
	return &LecturerHandler{
		log:             log.With("handler", "LecturerHandler"),
		lecturerService: lecturerService,
	}
}

func (h *LecturerHandler) Create(c *gin.Context) {
	file, _ := c.FormFile("file")
	input := services.LecturerInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	lecturer, err := h.lecturerService.Create(c.Request.Context(), file, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "lecturer material created", lecturer)
}

func (h *LecturerHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	lecturer, err := h.lecturerService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "lecturer material retrieved", lecturer)
}

func (h *LecturerHandler) List(c *gin.Context) {
	lecturers, err := h.lecturerService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "lecturer materials retrieved", lecturers)
}

func (h *LecturerHandler) Update(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	file, _ := c.FormFile("file")
	input := services.LecturerInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	lecturer, err := h.lecturerService.Update(c.Request.Context(), id, file, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "lecturer material updated", lecturer)
}

func (h *LecturerHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.lecturerService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "lecturer material deleted", nil)
}
