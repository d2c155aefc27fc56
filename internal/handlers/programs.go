package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoyChela/Epidemiology/internal/middleware"
	"github.com/JoyChela/Epidemiology/internal/services"
)

// --- Structs for Request Binding ---

type CreateProgramRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
}

type UpdateProgramRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

// --- Handler Functions ---

func (h *Handler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if !h.bind(c, &req) {
		return
	}

	program, err := h.svc.Programs.Create(c.Request.Context(), services.ProgramInput{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   middleware.GetActor(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, program)
}

func (h *Handler) ListPrograms(c *gin.Context) {
	programs, err := h.svc.Programs.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

func (h *Handler) GetProgram(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	program, err := h.svc.Programs.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

func (h *Handler) UpdateProgram(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateProgramRequest
	if !h.bind(c, &req) {
		return
	}

	program, err := h.svc.Programs.Update(c.Request.Context(), id, services.ProgramPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

func (h *Handler) DeleteProgram(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Programs.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	deleted(c, "Program deleted successfully")
}
