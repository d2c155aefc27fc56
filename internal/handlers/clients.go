package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JoyChela/Epidemiology/internal/errs"
	"github.com/JoyChela/Epidemiology/internal/middleware"
	"github.com/JoyChela/Epidemiology/internal/models"
	"github.com/JoyChela/Epidemiology/internal/services"
)

// --- Structs for Request Binding ---

type CreateClientRequest struct {
	FirstName     string  `json:"first_name" binding:"required,max=50"`
	LastName      string  `json:"last_name" binding:"required,max=50"`
	DateOfBirth   string  `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Gender        string  `json:"gender" binding:"required,max=20"`
	ContactNumber *string `json:"contact_number" binding:"omitempty,max=20"`
	Email         *string `json:"email" binding:"omitempty,email,max=100"`
	Address       *string `json:"address"`
}

type EnrollClientRequest struct {
	Notes *string `json:"notes"`
}

// --- Response shapes ---

type ClientResponse struct {
	ID            uint      `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	DateOfBirth   string    `json:"date_of_birth"`
	Gender        string    `json:"gender"`
	ContactNumber *string   `json:"contact_number"`
	Email         *string   `json:"email"`
	Address       *string   `json:"address"`
	RegisteredAt  time.Time `json:"registered_at"`
	RegisteredBy  *uint     `json:"registered_by"`
}

type ClientDetailResponse struct {
	ClientResponse
	Programs []models.EnrollmentDetail `json:"programs"`
}

func toClientResponse(c models.Client) ClientResponse {
	return ClientResponse{
		ID:            c.ID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		DateOfBirth:   c.BirthDate(),
		Gender:        c.Gender,
		ContactNumber: c.ContactNumber,
		Email:         c.Email,
		Address:       c.Address,
		RegisteredAt:  c.RegisteredAt,
		RegisteredBy:  c.RegisteredBy,
	}
}

// --- Handler Functions ---

func (h *Handler) RegisterClient(c *gin.Context) {
	var req CreateClientRequest
	if !h.bind(c, &req) {
		return
	}

	client, err := h.svc.Clients.Register(c.Request.Context(), services.ClientInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DateOfBirth:   req.DateOfBirth,
		Gender:        req.Gender,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Address:       req.Address,
		RegisteredBy:  middleware.GetActor(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toClientResponse(*client))
}

// SearchClients filters by first_name, last_name and search (either name).
func (h *Handler) SearchClients(c *gin.Context) {
	clients, err := h.svc.Clients.Search(c.Request.Context(), services.ClientFilter{
		FirstName: c.Query("first_name"),
		LastName:  c.Query("last_name"),
		Search:    c.Query("search"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]ClientResponse, 0, len(clients))
	for _, cl := range clients {
		out = append(out, toClientResponse(cl))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetClient(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.svc.Clients.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ClientDetailResponse{
		ClientResponse: toClientResponse(detail.Client),
		Programs:       detail.Programs,
	})
}

func (h *Handler) DeleteClient(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Clients.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	deleted(c, "Client deleted successfully")
}

// EnrollClient is the client-scoped enrollment route. The body is optional.
func (h *Handler) EnrollClient(c *gin.Context) {
	clientID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	programID, ok := h.pathID(c, "program_id")
	if !ok {
		return
	}

	var req EnrollClientRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.fail(c, errs.ValidationError(err))
		return
	}

	enrollment, err := h.svc.Enrollments.Enroll(c.Request.Context(), services.EnrollInput{
		ClientID:   clientID,
		ProgramID:  programID,
		Notes:      req.Notes,
		EnrolledBy: middleware.GetActor(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

func (h *Handler) ListClientPrograms(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	enrollments, err := h.svc.Enrollments.ListByClient(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollments)
}
