package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"opsbus/internal/app/dto"
	"opsbus/internal/domain/subscription"
)

type subscriptionBody struct {
	HandlerType string         `json:"handler_type"`
	EventTypes  []string       `json:"event_types"`
	IsActive    *bool          `json:"is_active"`
	TargetURL   string         `json:"target_url"`
	Config      map[string]any `json:"config"`
}

func (h *Handler) SubscriptionCreate(c *gin.Context) {
	var body subscriptionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}

	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	sub, err := h.SubSvc.Create(c.Request.Context(), subscription.Subscription{
		HandlerType: body.HandlerType,
		EventTypes:  body.EventTypes,
		IsActive:    isActive,
		TargetURL:   body.TargetURL,
		Config:      body.Config,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSubscriptionDTO(sub))
}

func (h *Handler) SubscriptionUpdate(c *gin.Context) {
	var body subscriptionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}

	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	sub, err := h.SubSvc.Update(c.Request.Context(), subscription.Subscription{
		ID:          c.Param("id"),
		HandlerType: body.HandlerType,
		EventTypes:  body.EventTypes,
		IsActive:    isActive,
		TargetURL:   body.TargetURL,
		Config:      body.Config,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSubscriptionDTO(sub))
}

func (h *Handler) SubscriptionActivate(c *gin.Context) {
	h.setSubscriptionActive(c, true)
}

func (h *Handler) SubscriptionDeactivate(c *gin.Context) {
	h.setSubscriptionActive(c, false)
}

func (h *Handler) setSubscriptionActive(c *gin.Context, isActive bool) {
	sub, err := h.SubSvc.SetActive(c.Request.Context(), c.Param("id"), isActive)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSubscriptionDTO(sub))
}

func (h *Handler) SubscriptionGet(c *gin.Context) {
	sub, err := h.SubSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSubscriptionDTO(sub))
}

func (h *Handler) SubscriptionList(c *gin.Context) {
	subs, err := h.SubSvc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := struct {
		Subscriptions []dto.Subscription `json:"subscriptions"`
	}{
		Subscriptions: make([]dto.Subscription, 0, len(subs)),
	}
	for _, sub := range subs {
		resp.Subscriptions = append(resp.Subscriptions, toSubscriptionDTO(sub))
	}

	c.JSON(http.StatusOK, resp)
}

func toSubscriptionDTO(s subscription.Subscription) dto.Subscription {
	return dto.Subscription{
		SubscriptionID: s.ID,
		HandlerType:    s.HandlerType,
		EventTypes:     append([]string(nil), s.EventTypes...),
		IsActive:       s.IsActive,
		TargetURL:      s.TargetURL,
		Config:         s.Config,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
