package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"opsbus/internal/app/dto"
	"opsbus/internal/domain/event"
	"opsbus/internal/domain/stats"
)

func (h *Handler) EventGet(c *gin.Context) {
	ev, err := h.Bus.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventDTO(ev))
}

func (h *Handler) EventList(c *gin.Context) {
	f := stats.EventFilter{
		Type:       c.Query("type"),
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
		OrgID:      c.Query("org_id"),
		Status:     event.Status(c.Query("status")),
		UserID:     c.Query("user_id"),
	}

	first := 0
	if raw := c.Query("first"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.badRequest(c, "first must be a non-negative integer")
			return
		}
		first = n
	}

	page, err := h.StatsSvc.ListEvents(c.Request.Context(), f, c.Query("after"), first)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.EventPage{
		Events:      make([]dto.Event, 0, len(page.Events)),
		EndCursor:   page.EndCursor,
		HasNextPage: page.HasNextPage,
	}
	for _, ev := range page.Events {
		resp.Events = append(resp.Events, toEventDTO(ev))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) EventReplay(c *gin.Context) {
	ev, err := h.Bus.Replay(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventDTO(ev))
}

func toEventDTO(ev event.Event) dto.Event {
	return dto.Event{
		EventID:        ev.ID,
		EventType:      ev.Type,
		SourceSubgraph: ev.SourceSubgraph,
		EntityType:     ev.EntityType,
		EntityID:       ev.EntityID,
		OrgID:          ev.OrgID,
		ActorUserID:    ev.ActorUserID,
		TargetUserIDs:  append([]string(nil), ev.TargetUserIDs...),
		Payload:        ev.Payload,
		Metadata:       ev.Metadata,
		Status:         string(ev.Status),
		CreatedAt:      ev.CreatedAt,
		ProcessedAt:    ev.ProcessedAt,
	}
}
