package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"opsbus/internal/app/rpc"
)

func (h *Handler) PublishEvent(c *gin.Context) {
	var req rpc.PublishEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}

	resp, err := h.RPC.PublishEvent(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) PublishBulkEvents(c *gin.Context) {
	var req rpc.PublishBulkEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}

	c.JSON(http.StatusOK, h.RPC.PublishBulkEvents(c.Request.Context(), req))
}

func (h *Handler) GetEventStatus(c *gin.Context) {
	resp, err := h.RPC.GetEventStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
