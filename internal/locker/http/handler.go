package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/locker-access-backend/internal/locker"
	"github.com/nekogravitycat/locker-access-backend/internal/pkg/request"
	"github.com/nekogravitycat/locker-access-backend/internal/pkg/response"
)

type Handler struct {
	service locker.Service
}

func NewHandler(service locker.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateLockerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	l, err := h.service.Create(c.Request.Context(), locker.CreateRequest{
		LocationID: body.LocationID,
		Name:       body.Name,
		Size:       body.Size,
	})
	if err != nil {
		switch {
		case errors.Is(err, locker.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, locker.ErrInvalidLocation):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create locker"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewLockerResponse(l))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	l, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, locker.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "locker not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get locker"})
		return
	}

	c.JSON(http.StatusOK, NewLockerResponse(l))
}

func (h *Handler) List(c *gin.Context) {
	var req ListLockersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	lockers, total, err := h.service.List(c.Request.Context(), locker.Filter{
		LocationID: req.LocationID,
		IsActive:   req.IsActive,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list lockers"})
		return
	}

	items := make([]LockerResponse, len(lockers))
	for i, l := range lockers {
		items[i] = NewLockerResponse(l)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}
