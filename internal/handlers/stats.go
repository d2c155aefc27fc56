package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// --- Handler Functions ---

func (h *Handler) Stats(c *gin.Context) {
	summary, err := h.svc.Stats.Summary(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
