package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"opsbus/internal/app/dto"
	"opsbus/internal/domain/stats"
)

func (h *Handler) EventStats(c *gin.Context) {
	var w stats.Window

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.badRequest(c, "from must be RFC3339")
			return
		}
		w.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.badRequest(c, "to must be RFC3339")
			return
		}
		w.To = &t
	}

	res, err := h.StatsSvc.GetEventStats(c.Request.Context(), w)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.EventStatsResponse{
		Total:     res.Total,
		Processed: res.Processed,
		Failed:    res.Failed,
		ByType:    make([]dto.TypeCount, 0, len(res.ByType)),
	}
	for _, tc := range res.ByType {
		resp.ByType = append(resp.ByType, dto.TypeCount{EventType: tc.EventType, Count: tc.Count})
	}

	c.JSON(http.StatusOK, resp)
}
