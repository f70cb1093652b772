package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shepherd-laundry/internal/model"
)

// GetItems handles GET /api/items.
func (h *Handler) GetItems(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter(c).items(h.app.Items.Get()))
}

// GetCycles handles GET /api/cycles.
func (h *Handler) GetCycles(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter(c).cycles(h.app.Cycles.Get()))
}

// GetDrying handles GET /api/drying.
func (h *Handler) GetDrying(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter(c).drying(h.app.Drying.Get()))
}

// GetConsumables handles GET /api/consumables.
func (h *Handler) GetConsumables(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter(c).consumables(h.app.Consumables.Get()))
}

// GetMembers handles GET /api/members.
func (h *Handler) GetMembers(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter(c).members(h.app.Members.Get()))
}

// PutItems replaces the whole item collection.
func (h *Handler) PutItems(c *gin.Context) { replace(c, h.app.ReplaceItems) }

// PutCycles replaces the whole cycle collection.
func (h *Handler) PutCycles(c *gin.Context) { replace(c, h.app.ReplaceCycles) }

// PutDrying replaces the whole drying session collection.
func (h *Handler) PutDrying(c *gin.Context) { replace(c, h.app.ReplaceDrying) }

// PutConsumables replaces the whole consumable collection.
func (h *Handler) PutConsumables(c *gin.Context) { replace(c, h.app.ReplaceConsumables) }

// PutMembers replaces the whole member collection.
func (h *Handler) PutMembers(c *gin.Context) { replace(c, h.app.ReplaceMembers) }

func replace[T model.Entity](c *gin.Context, apply func([]T) error) {
	var records []T
	if err := c.ShouldBindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []T{}
	}
	if err := apply(records); err != nil {
		respondReplaceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetHamper handles GET /api/views/hamper.
func (h *Handler) GetHamper(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter(c).items(h.app.HamperItems.Get()))
}

// GetActiveCycles handles GET /api/views/active-cycles.
func (h *Handler) GetActiveCycles(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter(c).cycles(h.app.ActiveCycles.Get()))
}

// GetLowConsumables handles GET /api/views/low-consumables.
func (h *Handler) GetLowConsumables(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter(c).consumables(h.app.LowConsumables.Get()))
}

// GetUrgent handles GET /api/views/urgent.
func (h *Handler) GetUrgent(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter(c).items(h.app.UrgentItems.Get()))
}

// GetOverdue handles GET /api/views/overdue.
func (h *Handler) GetOverdue(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter(c).items(h.app.OverdueItems.Get()))
}

// GetLabels returns the negotiated label catalog.
func (h *Handler) GetLabels(c *gin.Context) {
	c.JSON(http.StatusOK, catalog(c))
}

func (h *Handler) presenter(c *gin.Context) presenter {
	return presenter{app: h.app, cat: catalog(c)}
}
