package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/JoyChela/Epidemiology/internal/auth"
	"github.com/JoyChela/Epidemiology/internal/errs"
	"github.com/JoyChela/Epidemiology/internal/middleware"
	"github.com/JoyChela/Epidemiology/internal/services"
)

// Handler serves the /api routes.
type Handler struct {
	svc    *services.Services
	issuer *auth.Issuer
	log    zerolog.Logger
}

func New(svc *services.Services, issuer *auth.Issuer, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, issuer: issuer, log: log}
}

// fail writes err as JSON. Non-HTTP errors are logged and answered with a
// generic 500.
func (h *Handler) fail(c *gin.Context, err error) {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		c.AbortWithStatusJSON(httpErr.Status, httpErr)
		return
	}
	_ = c.Error(err)
	h.log.Error().Err(err).
		Str("request_id", middleware.GetRequestID(c)).
		Str("route", c.FullPath()).
		Msg("request failed")
	internal := errs.NewInternalServerError()
	c.AbortWithStatusJSON(internal.Status, internal)
}

// bind decodes the JSON body into req, answering 400 on failure.
func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.fail(c, errs.ValidationError(err))
		return false
	}
	return true
}

// pathID parses a numeric path parameter, answering 400 when it is not one.
func (h *Handler) pathID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		h.fail(c, errs.NewBadRequestError("Invalid "+param+" format",
			errs.FieldError{Field: param, Error: "must be a positive integer"}))
		return 0, false
	}
	return uint(id), true
}

func deleted(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}
