package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/locker-access-backend/internal/access"
	"github.com/nekogravitycat/locker-access-backend/internal/auth"
	"github.com/nekogravitycat/locker-access-backend/internal/pkg/clock"
	"github.com/nekogravitycat/locker-access-backend/internal/pkg/response"
)

type Handler struct {
	service access.Service
	clk     clock.Clock
}

func NewHandler(service access.Service, clk clock.Clock) *Handler {
	return &Handler{
		service: service,
		clk:     clk,
	}
}

// Open authorizes one attempt to open the locker tied to a booking.
// The evaluation instant is read once here and passed down, so the decision
// is deterministic for a given request.
func (h *Handler) Open(c *gin.Context) {
	var req OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	res, err := h.service.AuthorizeOpen(c.Request.Context(), userID, req.BookingID, h.clk.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, OpenResponse{
		Success:   true,
		Message:   fmt.Sprintf("locker %s is opening", res.LockerName),
		BookingID: res.BookingID,
	})
}
