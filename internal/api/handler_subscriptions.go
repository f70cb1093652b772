package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shepherd-laundry/internal/model"
	"shepherd-laundry/internal/store"
)

type putSubscriptionRequest struct {
	Endpoint string             `json:"endpoint" binding:"required"`
	P256DH   string             `json:"p256dh" binding:"required"`
	Auth     string             `json:"auth" binding:"required"`
	Topics   []model.AlertTopic `json:"topics"`
}

// PutSubscription handles the creation or replacement of a subscription.
func (h *Handler) PutSubscription(c *gin.Context) {
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	subscription := model.PushSubscription{
		Endpoint: req.Endpoint,
		P256DH:   req.P256DH,
		Auth:     req.Auth,
		Topics:   req.Topics,
	}

	if err := h.app.UpsertPushSubscription(subscription); err != nil {
		if errors.Is(err, store.ErrInvalidSnapshot) {
			respondReplaceError(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusCreated)
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription handles the deletion of a subscription.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if !h.app.RemovePushSubscription(req.Endpoint) {
		c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSubscription returns the topics a subscription opted into.
func (h *Handler) GetSubscription(c *gin.Context) {
	endpoint := c.Query("endpoint")
	if endpoint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint is required"})
		return
	}

	subscription, ok := h.app.PushSubscription(endpoint)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"topics": subscription.Topics, "created_at": subscription.CreatedAt})
}
