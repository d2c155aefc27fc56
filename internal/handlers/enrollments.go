package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoyChela/Epidemiology/internal/middleware"
	"github.com/JoyChela/Epidemiology/internal/services"
)

// --- Structs for Request Binding ---

type CreateEnrollmentRequest struct {
	ClientID  uint    `json:"client_id" binding:"required"`
	ProgramID uint    `json:"program_id" binding:"required"`
	Notes     *string `json:"notes"`
}

// --- Handler Functions ---

// CreateEnrollment is the flat enrollment route; it shares Enroll with EnrollClient.
func (h *Handler) CreateEnrollment(c *gin.Context) {
	var req CreateEnrollmentRequest
	if !h.bind(c, &req) {
		return
	}

	enrollment, err := h.svc.Enrollments.Enroll(c.Request.Context(), services.EnrollInput{
		ClientID:   req.ClientID,
		ProgramID:  req.ProgramID,
		Notes:      req.Notes,
		EnrolledBy: middleware.GetActor(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

func (h *Handler) ListEnrollments(c *gin.Context) {
	enrollments, err := h.svc.Enrollments.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollments)
}

func (h *Handler) GetEnrollment(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	enrollment, err := h.svc.Enrollments.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollment)
}

func (h *Handler) DeleteEnrollment(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Enrollments.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	deleted(c, "Enrollment deleted successfully")
}
